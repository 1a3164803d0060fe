package formats

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"encoding/json"
	"time"
)

type jsonType struct {
	Variant string `json:"variant" yaml:"variant"`
	Name    string `json:"name" yaml:"name"`
}

type jsonSignature struct {
	File        string     `json:"file" yaml:"file"`
	Line        int        `json:"line" yaml:"line"`
	Namespace   string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Class       string     `json:"class,omitempty" yaml:"class,omitempty"`
	Function    string     `json:"function" yaml:"function"`
	Qualified   string     `json:"qualified" yaml:"qualified"`
	DocTag      string     `json:"doc_tag,omitempty" yaml:"doc_tag,omitempty"`
	ReturnTypes []jsonType `json:"return_types" yaml:"return_types"`
}

type jsonFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// jsonReport is the structured document shared by the json and yaml formats.
type jsonReport struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	StartedAt    time.Time       `json:"started_at" yaml:"started_at"`
	DurationMS   int64           `json:"duration_ms" yaml:"duration_ms"`
	FilesScanned int             `json:"files_scanned" yaml:"files_scanned"`
	Signatures   []jsonSignature `json:"signatures" yaml:"signatures"`
	Failures     []jsonFailure   `json:"failures" yaml:"failures"`
}

func GenerateJSON(result ports.ScanResult, opts Options) (string, error) {
	data, err := json.MarshalIndent(buildReport(result, opts), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func buildReport(result ports.ScanResult, opts Options) jsonReport {
	report := jsonReport{
		RunID:        result.RunID,
		StartedAt:    result.StartedAt.UTC(),
		DurationMS:   result.Duration.Milliseconds(),
		FilesScanned: result.FilesScanned,
		Signatures:   make([]jsonSignature, 0, len(result.Signatures)),
		Failures:     make([]jsonFailure, 0, len(result.Failures)),
	}
	for _, f := range result.Failures {
		report.Failures = append(report.Failures, jsonFailure{Path: relPath(opts.ProjectRoot, f.Path), Error: f.Error})
	}

	for _, sig := range result.Signatures {
		returns := make([]jsonType, 0, len(sig.ReturnTypes))
		for _, t := range sig.ReturnTypes {
			returns = append(returns, jsonType{Variant: types.Variant(t), Name: t.String()})
		}
		report.Signatures = append(report.Signatures, jsonSignature{
			File:        relPath(opts.ProjectRoot, sig.File),
			Line:        sig.Line,
			Namespace:   sig.Namespace,
			Class:       sig.Class,
			Function:    sig.Function,
			Qualified:   sig.Qualified,
			DocTag:      sig.DocTag,
			ReturnTypes: returns,
		})
	}

	return report
}
