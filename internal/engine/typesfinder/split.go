package typesfinder

import "strings"

const (
	unionSeparator = "|"
	arraySuffix    = "[]"
)

// TypeToken is one member of a union type expression.
type TypeToken struct {
	// Name is the expression with every trailing [] removed.
	Name string
	// Depth counts the trailing [] suffixes that were removed.
	Depth int
}

// IsArray reports whether the token carried at least one [] suffix.
func (t TypeToken) IsArray() bool {
	return t.Depth > 0
}

// SplitTypeExpression splits expr on the union separator. The split is flat;
// separators are never treated as nested. Tokens with an empty name are
// dropped.
func SplitTypeExpression(expr string) []TypeToken {
	pieces := strings.Split(expr, unionSeparator)
	tokens := make([]TypeToken, 0, len(pieces))
	for _, piece := range pieces {
		name := strings.TrimSpace(piece)
		depth := 0
		for strings.HasSuffix(name, arraySuffix) {
			name = strings.TrimSuffix(name, arraySuffix)
			depth++
		}
		if name == "" {
			continue
		}
		tokens = append(tokens, TypeToken{Name: name, Depth: depth})
	}
	return tokens
}
