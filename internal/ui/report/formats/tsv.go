package formats

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"fmt"
	"strings"
)

func GenerateTSV(result ports.ScanResult, opts Options) (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tLine\tNamespace\tClass\tFunction\tDocTag\tReturnTypes\n")
	for _, sig := range result.Signatures {
		buf.WriteString(fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			relPath(opts.ProjectRoot, sig.File),
			sig.Line,
			sig.Namespace,
			sig.Class,
			sig.Function,
			sig.DocTag,
			types.Compound(sig.ReturnTypes),
		))
	}

	return buf.String(), nil
}
