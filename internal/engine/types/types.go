// Package types holds the closed set of type descriptors produced when
// resolving documentation-comment return types.
package types

import "strings"

// Type is one resolved entry of a return-type union. The set of
// implementations is closed: Scalar, Array and Object.
type Type interface {
	String() string
	isType()
}

// Kind identifies a builtin keyword type.
type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindFloat
	KindBoolean
	KindCallable
	KindMixed
	KindVoid
	KindObject
	KindIterable
	KindSelf
	KindStatic
	KindParent
	KindNull
	KindNever
	KindTrue
	KindFalse
	KindResource
	KindScalar
	KindThis
)

var kindNames = map[Kind]string{
	KindInteger:  "int",
	KindString:   "string",
	KindFloat:    "float",
	KindBoolean:  "bool",
	KindCallable: "callable",
	KindMixed:    "mixed",
	KindVoid:     "void",
	KindObject:   "object",
	KindIterable: "iterable",
	KindSelf:     "self",
	KindStatic:   "static",
	KindParent:   "parent",
	KindNull:     "null",
	KindNever:    "never",
	KindTrue:     "true",
	KindFalse:    "false",
	KindResource: "resource",
	KindScalar:   "scalar",
	KindThis:     "$this",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// keywords maps every accepted spelling (lowercase) to its kind.
var keywords = map[string]Kind{
	"int":      KindInteger,
	"integer":  KindInteger,
	"string":   KindString,
	"float":    KindFloat,
	"double":   KindFloat,
	"bool":     KindBoolean,
	"boolean":  KindBoolean,
	"callable": KindCallable,
	"mixed":    KindMixed,
	"void":     KindVoid,
	"object":   KindObject,
	"iterable": KindIterable,
	"self":     KindSelf,
	"static":   KindStatic,
	"parent":   KindParent,
	"null":     KindNull,
	"never":    KindNever,
	"true":     KindTrue,
	"false":    KindFalse,
	"resource": KindResource,
	"scalar":   KindScalar,
	"$this":    KindThis,
}

// ArrayKeyword is the keyword that maps to Array rather than a Scalar.
const ArrayKeyword = "array"

// LookupKeyword reports the scalar kind for name, case-insensitively.
// The array keyword is not a scalar and is reported as absent.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(name)]
	return k, ok
}

// IsKeyword reports whether name is a builtin keyword, array included.
func IsKeyword(name string) bool {
	if strings.EqualFold(name, ArrayKeyword) {
		return true
	}
	_, ok := LookupKeyword(name)
	return ok
}

// Scalar is a builtin keyword type such as int or void.
type Scalar struct {
	Kind Kind
}

func (s Scalar) String() string { return s.Kind.String() }
func (Scalar) isType()          {}

// Array is an array of unspecified element type. Element types and nesting
// depth are not tracked.
type Array struct{}

func (Array) String() string { return ArrayKeyword }
func (Array) isType()        {}

// Object is a class-like type named by its fully qualified structural
// element name, always starting with the root separator.
type Object struct {
	FQSEN string
}

func (o Object) String() string { return o.FQSEN }
func (Object) isType()          {}

// Compound renders a resolved union in doc-comment notation.
func Compound(ts []Type) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, "|")
}

// Variant names the variant of t: "scalar", "array" or "object".
func Variant(t Type) string {
	switch t.(type) {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}
