package formats

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	openAPIVersion  = "3.0.3"
	componentPrefix = "#/components/schemas/"
	returnsPrefix   = "returns."
)

// GenerateOpenAPI exports resolved return types as an OpenAPI components
// document. Each documented signature becomes a schema named after its
// qualified name; each class-like type becomes a referenced component.
func GenerateOpenAPI(result ports.ScanResult, opts Options) (string, error) {
	doc := BuildOpenAPI(result, opts)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func BuildOpenAPI(result ports.ScanResult, opts Options) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   nonEmpty(opts.Title, "Return Types"),
			Version: nonEmpty(result.RunID, "0"),
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, sig := range result.Signatures {
		if len(sig.ReturnTypes) == 0 {
			continue
		}

		refs := make(openapi3.SchemaRefs, 0, len(sig.ReturnTypes))
		for _, t := range sig.ReturnTypes {
			refs = append(refs, schemaFor(doc, t))
		}

		var schema *openapi3.Schema
		if len(refs) == 1 && refs[0].Ref == "" {
			schema = refs[0].Value
		} else {
			schema = &openapi3.Schema{OneOf: refs}
		}
		schema.Description = sig.Qualified
		doc.Components.Schemas[uniqueSchemaName(doc.Components.Schemas, returnsPrefix+ComponentName(sig.Qualified))] = openapi3.NewSchemaRef("", schema)
	}

	return doc
}

// uniqueSchemaName suffixes base with _2, _3, ... until it is unused, so
// functions sharing a qualified name across files keep separate schemas.
func uniqueSchemaName(schemas openapi3.Schemas, base string) string {
	if _, taken := schemas[base]; !taken {
		return base
	}
	for n := 2; ; n++ {
		name := base + "_" + strconv.Itoa(n)
		if _, taken := schemas[name]; !taken {
			return name
		}
	}
}

func schemaFor(doc *openapi3.T, t types.Type) *openapi3.SchemaRef {
	switch v := t.(type) {
	case types.Array:
		return openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(openapi3.NewSchema()))
	case types.Object:
		name := ComponentName(v.FQSEN)
		if _, ok := doc.Components.Schemas[name]; !ok {
			component := openapi3.NewObjectSchema()
			component.Title = v.FQSEN
			doc.Components.Schemas[name] = openapi3.NewSchemaRef("", component)
		}
		return openapi3.NewSchemaRef(componentPrefix+name, nil)
	case types.Scalar:
		return openapi3.NewSchemaRef("", scalarSchema(v.Kind))
	default:
		return openapi3.NewSchemaRef("", openapi3.NewSchema())
	}
}

func scalarSchema(kind types.Kind) *openapi3.Schema {
	var s *openapi3.Schema
	switch kind {
	case types.KindInteger:
		s = openapi3.NewIntegerSchema()
	case types.KindFloat:
		s = openapi3.NewFloat64Schema()
	case types.KindString:
		s = openapi3.NewStringSchema()
	case types.KindBoolean:
		s = openapi3.NewBoolSchema()
	case types.KindTrue:
		s = openapi3.NewBoolSchema().WithEnum(true)
	case types.KindFalse:
		s = openapi3.NewBoolSchema().WithEnum(false)
	case types.KindNull:
		s = openapi3.NewSchema().WithNullable()
	case types.KindObject, types.KindSelf, types.KindStatic, types.KindParent, types.KindThis:
		s = openapi3.NewObjectSchema()
	case types.KindIterable:
		s = openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	default:
		// mixed, void, never, callable, resource and scalar have no JSON shape.
		s = openapi3.NewSchema()
	}
	s.Title = kind.String()
	return s
}

// ComponentName turns a structural element name into a component key:
// `\Vendor\Http\Client` becomes `Vendor.Http.Client`.
func ComponentName(name string) string {
	name = strings.TrimLeft(name, `\`)
	name = strings.ReplaceAll(name, `\`, ".")
	name = strings.ReplaceAll(name, "::", ".")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
