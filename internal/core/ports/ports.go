package ports

import (
	"context"
	"doctypes/internal/data/history"
	"doctypes/internal/engine/parser"
	"doctypes/internal/engine/types"
	"time"
)

// CodeParser abstracts source parsing and file support checks.
type CodeParser interface {
	ParseFile(path string, content []byte) (*parser.File, error)
	IsSupportedPath(filePath string) bool
	SupportedExtensions() []string
}

// HistoryStore abstracts run persistence.
type HistoryStore interface {
	SaveRun(projectKey string, run history.Run, rows []history.SignatureRow) error
	LoadRuns(projectKey string, since time.Time) ([]history.Run, error)
}

// ScanRequest defines a scan operation request for driving adapters.
type ScanRequest struct {
	Paths []string
}

// Signature is one documented function or method and its resolved return
// types. ReturnTypes is empty when the function has no usable @return tag.
type Signature struct {
	File        string
	Line        int
	Column      int
	Function    string
	Class       string
	Namespace   string
	Qualified   string
	DocTag      string // Raw type expression of the @return tag
	ReturnTypes []types.Type
}

// FileFailure records a file that could not be read or parsed.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ScanResult is the outcome of one scan run.
type ScanResult struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	FilesScanned int
	Signatures   []Signature
	Failures     []FileFailure
}

// AnalysisService is the driving port used by the CLI and UI.
type AnalysisService interface {
	RunScan(ctx context.Context, req ScanRequest) (ScanResult, error)
}
