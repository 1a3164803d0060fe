package parser

import (
	"doctypes/internal/core/errors"
	"doctypes/internal/shared/util"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// DefaultExtensions are the file extensions parsed when none are configured.
var DefaultExtensions = []string{".php"}

type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*File, error)
}

type Parser struct {
	pool       *ParserPool
	extractor  Extractor
	extensions map[string]bool
}

// PHPLanguage returns the tree-sitter PHP grammar, including inline HTML.
func PHPLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_php.LanguagePHP())
}

func NewParser(extensions []string) *Parser {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	p := &Parser{
		pool:       NewParserPool(),
		extractor:  &PHPExtractor{},
		extensions: make(map[string]bool, len(extensions)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.extensions[ext] = true
	}
	return p
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	if !p.IsSupportedPath(path) {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, "unsupported file type"),
			errors.CtxPath, path,
		)
	}

	tree, err := p.pool.Parse(content)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()

	res, err := p.extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("extraction failed: %s", path))
	}
	return res, nil
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

func (p *Parser) SupportedExtensions() []string {
	return util.SortedStringKeys(p.extensions)
}
