package parser

import (
	"time"

	"doctypes/internal/engine/typesfinder"
)

type File struct {
	Path       string
	Language   string
	Namespaces []string // Declared namespaces in source order
	Functions  []Function
	ParsedAt   time.Time
}

type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindMethod
)

func (k FunctionKind) String() string {
	if k == KindMethod {
		return "method"
	}
	return "function"
}

// Function is a documented callable found in a source file. It satisfies
// typesfinder.CommentSource.
type Function struct {
	Name     string
	Class    string // Enclosing class-like declaration, empty for functions
	Kind     FunctionKind
	Doc      string // Raw /** */ comment, empty when undocumented
	Context  *typesfinder.NamespaceContext
	Location Location
}

func (f Function) DocComment() string {
	return f.Doc
}

// QualifiedName renders the function as \Ns\name or \Ns\Class::name.
func (f Function) QualifiedName() string {
	prefix := typesfinder.NamespaceSeparator
	if ns := f.Context.Name(); ns != "" {
		prefix += ns + typesfinder.NamespaceSeparator
	}
	if f.Class != "" {
		return prefix + f.Class + "::" + f.Name
	}
	return prefix + f.Name
}

type Location struct {
	File   string
	Line   int
	Column int
}
