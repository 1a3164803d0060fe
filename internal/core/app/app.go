package app

import (
	"doctypes/internal/core/config"
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/parser"
	"doctypes/internal/engine/typesfinder"
	"fmt"

	"github.com/gobwas/glob"
)

type App struct {
	Config  *config.Config
	parser  ports.CodeParser
	finder  *typesfinder.ReturnTypeFinder
	history ports.HistoryStore
	cache   *parseCache

	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

type Option func(*App)

// WithHistory persists every scan result to store.
func WithHistory(store ports.HistoryStore) Option {
	return func(a *App) {
		a.history = store
	}
}

// WithParser replaces the tree-sitter parser.
func WithParser(p ports.CodeParser) Option {
	return func(a *App) {
		a.parser = p
	}
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	a := &App{
		Config: cfg,
		finder: typesfinder.NewReturnTypeFinder(),
		cache:  newParseCache(cfg.Scan.CacheSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.parser == nil {
		a.parser = parser.NewParser(cfg.Scan.Extensions)
	}

	var err error
	if a.excludeDirs, err = compileGlobs(cfg.Scan.ExcludeDirs); err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	if a.excludeFiles, err = compileGlobs(cfg.Scan.ExcludeFiles); err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}
	return a, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// SupportedExtensions reports the extensions the scanner parses.
func (a *App) SupportedExtensions() []string {
	return a.parser.SupportedExtensions()
}
