// Package typesfinder resolves the @return tag of a documentation comment
// into resolved types, using the namespace and imports in scope of the
// documented function.
package typesfinder

import "doctypes/internal/engine/types"

// CommentSource is anything that can supply the raw documentation comment
// of a function or method.
type CommentSource interface {
	DocComment() string
}

// CommentString adapts a raw comment to CommentSource.
type CommentString string

func (c CommentString) DocComment() string { return string(c) }

// ReturnTypeFinder resolves declared return types. The zero value is ready
// to use and safe for concurrent use.
type ReturnTypeFinder struct{}

func NewReturnTypeFinder() *ReturnTypeFinder {
	return &ReturnTypeFinder{}
}

// Find reads the comment of source once and returns one resolved type per
// union member of its @return tag, in declaration order. A nil ctx is the
// global namespace. Find never fails; missing or unusable tags yield an
// empty slice.
func (f *ReturnTypeFinder) Find(source CommentSource, ctx *NamespaceContext) []types.Type {
	if source == nil {
		return []types.Type{}
	}
	return Resolve(source.DocComment(), ctx)
}

// Resolve is Find over a raw comment string.
func Resolve(comment string, ctx *NamespaceContext) []types.Type {
	expr, ok := ExtractReturnTag(comment)
	if !ok {
		return []types.Type{}
	}

	tokens := SplitTypeExpression(expr)
	out := make([]types.Type, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, BuildType(token, ctx))
	}
	return out
}
