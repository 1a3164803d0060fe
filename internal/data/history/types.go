package history

import "time"

// Run is the summary row of one scan.
type Run struct {
	RunID          string
	ProjectKey     string
	StartedAt      time.Time
	Duration       time.Duration
	FileCount      int
	SignatureCount int
	FailureCount   int
}

// SignatureRow is one documented function recorded for a run. ReturnTypes
// holds the resolved union in doc-comment notation.
type SignatureRow struct {
	File        string
	Line        int
	Column      int
	Function    string
	Class       string
	Namespace   string
	DocTag      string
	ReturnTypes string
	TypeCount   int
}
