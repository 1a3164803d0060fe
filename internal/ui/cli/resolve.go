package cli

import (
	"doctypes/internal/engine/types"
	"doctypes/internal/engine/typesfinder"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// parseUse reads `Name` or `Name as Alias`.
func parseUse(raw string) (typesfinder.UseDeclaration, error) {
	fields := strings.Fields(raw)
	switch {
	case len(fields) == 1:
		return typesfinder.UseDeclaration{Name: fields[0]}, nil
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return typesfinder.UseDeclaration{Name: fields[0], Alias: fields[2]}, nil
	default:
		return typesfinder.UseDeclaration{}, fmt.Errorf("invalid -use %q: want \"Name\" or \"Name as Alias\"", raw)
	}
}

func buildContext(namespace string, rawUses []string) (*typesfinder.NamespaceContext, error) {
	uses := make([]typesfinder.UseDeclaration, 0, len(rawUses))
	for _, raw := range rawUses {
		use, err := parseUse(raw)
		if err != nil {
			return nil, err
		}
		uses = append(uses, use)
	}
	return typesfinder.ContextFromUses(namespace, uses), nil
}

type resolvedType struct {
	Variant string `json:"variant"`
	Name    string `json:"name"`
}

// runResolve resolves a single comment and prints one type per line, or a
// JSON array when format is json.
func runResolve(opts cliOptions, format string, stdout io.Writer) error {
	ctx, err := buildContext(opts.namespace, opts.uses)
	if err != nil {
		return err
	}

	resolved := typesfinder.NewReturnTypeFinder().Find(typesfinder.CommentString(opts.comment), ctx)

	if format == "json" {
		out := make([]resolvedType, 0, len(resolved))
		for _, t := range resolved {
			out = append(out, resolvedType{Variant: types.Variant(t), Name: t.String()})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, t := range resolved {
		if _, err := fmt.Fprintf(stdout, "%s\t%s\n", types.Variant(t), t); err != nil {
			return err
		}
	}
	return nil
}
