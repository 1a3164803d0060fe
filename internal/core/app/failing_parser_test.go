package app

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"doctypes/internal/engine/parser"
)

// failingParser delegates to the real parser except for one base name.
type failingParser struct {
	fail  string
	inner *parser.Parser
}

func (p *failingParser) ParseFile(path string, content []byte) (*parser.File, error) {
	if filepath.Base(path) == p.fail {
		return nil, fmt.Errorf("synthetic parse failure")
	}
	return p.inner.ParseFile(path, content)
}

func (p *failingParser) IsSupportedPath(path string) bool {
	return filepath.Ext(path) == ".php"
}

func (p *failingParser) SupportedExtensions() []string {
	return []string{".php"}
}

func newRealParser() *parser.Parser {
	return parser.NewParser(nil)
}

// countingParser counts parse calls.
type countingParser struct {
	failingParser
	calls atomic.Int32
}

func (p *countingParser) ParseFile(path string, content []byte) (*parser.File, error) {
	p.calls.Add(1)
	return p.failingParser.ParseFile(path, content)
}
