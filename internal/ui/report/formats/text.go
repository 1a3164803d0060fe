package formats

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"fmt"
	"strings"
	"text/tabwriter"
)

// GenerateText renders one aligned line per signature followed by failures.
func GenerateText(result ports.ScanResult, opts Options) (string, error) {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	for _, sig := range result.Signatures {
		returns := types.Compound(sig.ReturnTypes)
		if returns == "" {
			returns = "-"
		}
		fmt.Fprintf(tw, "%s:%d\t%s\t%s\n", relPath(opts.ProjectRoot, sig.File), sig.Line, sig.Qualified, returns)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}

	for _, f := range result.Failures {
		fmt.Fprintf(&b, "error: %s: %s\n", relPath(opts.ProjectRoot, f.Path), f.Error)
	}
	fmt.Fprintf(&b, "%d files, %d signatures, %d failures\n", result.FilesScanned, len(result.Signatures), len(result.Failures))
	return b.String(), nil
}
