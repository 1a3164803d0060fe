package parser

import (
	"doctypes/internal/core/errors"
	"sync"
	"sync/atomic"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool hands out tree-sitter parsers already bound to the PHP grammar,
// so scanner workers reuse parsers instead of allocating one per file.
// Safe for concurrent use.
type ParserPool struct {
	pool   sync.Pool
	leased atomic.Int64
}

func NewParserPool() *ParserPool {
	lang := PHPLanguage()
	return &ParserPool{
		pool: sync.Pool{
			New: func() any {
				sp := sitter.NewParser()
				sp.SetLanguage(lang)
				return sp
			},
		},
	}
}

// Parse builds a syntax tree for content. The tree outlives the parser it
// came from; callers close it.
func (p *ParserPool) Parse(content []byte) (*sitter.Tree, error) {
	sp := p.get()
	defer p.put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	return tree, nil
}

// Leased returns the number of parsers currently in use.
func (p *ParserPool) Leased() int {
	return int(p.leased.Load())
}

func (p *ParserPool) get() *sitter.Parser {
	p.leased.Add(1)
	return p.pool.Get().(*sitter.Parser)
}

func (p *ParserPool) put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.leased.Add(-1)
	sp.Reset()
	p.pool.Put(sp)
}
