package formats

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"fmt"
	"strings"
)

func GenerateMarkdown(result ports.ScanResult, opts Options) (string, error) {
	var b strings.Builder

	b.WriteString("# " + nonEmpty(opts.Title, "Return Type Report") + "\n\n")

	documented := 0
	for _, sig := range result.Signatures {
		if len(sig.ReturnTypes) > 0 {
			documented++
		}
	}

	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Run | `%s` |\n", result.RunID))
	b.WriteString(fmt.Sprintf("| Files Scanned | %d |\n", result.FilesScanned))
	b.WriteString(fmt.Sprintf("| Functions | %d |\n", len(result.Signatures)))
	b.WriteString(fmt.Sprintf("| Documented Returns | %d |\n", documented))
	b.WriteString(fmt.Sprintf("| Failures | %d |\n\n", len(result.Failures)))

	writeSignatures(&b, result.Signatures, opts.ProjectRoot)
	writeFailures(&b, result.Failures, opts.ProjectRoot)

	return b.String(), nil
}

func writeSignatures(b *strings.Builder, sigs []ports.Signature, projectRoot string) {
	b.WriteString("## Signatures\n")
	if len(sigs) == 0 {
		b.WriteString("No functions found.\n\n")
		return
	}
	rows := make([]string, 0, len(sigs))
	for _, sig := range sigs {
		rows = append(rows, fmt.Sprintf("| `%s` | %s | `%s:%d` |\n",
			sig.Qualified,
			markdownTypes(sig.ReturnTypes),
			relPath(projectRoot, sig.File),
			sig.Line,
		))
	}
	writeTableWithCollapse(b, "Signature details", len(rows) > 50,
		[]string{"| Function | Returns | Location |\n", "| --- | --- | --- |\n"}, rows)
}

func writeFailures(b *strings.Builder, failures []ports.FileFailure, projectRoot string) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("## Failures\n")
	rows := make([]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, fmt.Sprintf("| `%s` | %s |\n", relPath(projectRoot, f.Path), strings.ReplaceAll(f.Error, "|", `\|`)))
	}
	writeTableWithCollapse(b, "Failure details", len(rows) > 15,
		[]string{"| File | Error |\n", "| --- | --- |\n"}, rows)
}

func markdownTypes(ts []types.Type) string {
	if len(ts) == 0 {
		return "_undocumented_"
	}
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, "`"+t.String()+"`")
	}
	return strings.Join(parts, " \\| ")
}

func writeTableWithCollapse(b *strings.Builder, summary string, collapse bool, header, rows []string) {
	if collapse {
		b.WriteString("<details>\n")
		b.WriteString("<summary>")
		b.WriteString(summary)
		b.WriteString("</summary>\n\n")
	}
	for _, line := range header {
		b.WriteString(line)
	}
	for _, line := range rows {
		b.WriteString(line)
	}
	b.WriteString("\n")
	if collapse {
		b.WriteString("</details>\n\n")
	}
}
