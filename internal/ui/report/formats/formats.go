// Package formats renders scan results in the supported report formats.
package formats

import (
	"doctypes/internal/core/config"
	"doctypes/internal/core/errors"
	"doctypes/internal/core/ports"
	"path/filepath"
	"strings"
)

// Options tune rendering. ProjectRoot, when set, makes file paths relative.
type Options struct {
	ProjectRoot string
	Title       string
}

type generateFunc func(result ports.ScanResult, opts Options) (string, error)

var generators = map[string]generateFunc{
	config.FormatText:     GenerateText,
	config.FormatTSV:      GenerateTSV,
	config.FormatJSON:     GenerateJSON,
	config.FormatMarkdown: GenerateMarkdown,
	config.FormatYAML:     GenerateYAML,
	config.FormatOpenAPI:  GenerateOpenAPI,
}

// Generate renders result in format.
func Generate(format string, result ports.ScanResult, opts Options) (string, error) {
	gen, ok := generators[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return "", errors.AddContext(errors.New(errors.CodeNotSupported, "unknown report format"), errors.CtxField, format)
	}
	return gen(result, opts)
}

func relPath(root, path string) string {
	root = strings.TrimSpace(root)
	path = strings.TrimSpace(path)
	if root == "" || path == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
