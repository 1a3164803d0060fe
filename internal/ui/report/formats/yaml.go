package formats

import (
	"bytes"
	"doctypes/internal/core/ports"

	"gopkg.in/yaml.v3"
)

func GenerateYAML(result ports.ScanResult, opts Options) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildReport(result, opts)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
