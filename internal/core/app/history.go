package app

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/data/history"
	"doctypes/internal/engine/types"
)

func (a *App) saveHistory(result ports.ScanResult) error {
	run := history.Run{
		RunID:          result.RunID,
		ProjectKey:     a.Config.History.Project,
		StartedAt:      result.StartedAt,
		Duration:       result.Duration,
		FileCount:      result.FilesScanned,
		SignatureCount: len(result.Signatures),
		FailureCount:   len(result.Failures),
	}
	return a.history.SaveRun(a.Config.History.Project, run, signatureRows(result.Signatures))
}

func signatureRows(sigs []ports.Signature) []history.SignatureRow {
	rows := make([]history.SignatureRow, 0, len(sigs))
	for _, sig := range sigs {
		rows = append(rows, history.SignatureRow{
			File:        sig.File,
			Line:        sig.Line,
			Column:      sig.Column,
			Function:    sig.Function,
			Class:       sig.Class,
			Namespace:   sig.Namespace,
			DocTag:      sig.DocTag,
			ReturnTypes: types.Compound(sig.ReturnTypes),
			TypeCount:   len(sig.ReturnTypes),
		})
	}
	return rows
}
