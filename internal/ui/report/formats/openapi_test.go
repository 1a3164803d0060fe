package formats

import (
	"context"
	"testing"

	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOpenAPI(t *testing.T) {
	doc := BuildOpenAPI(sampleResult(), Options{})

	schemas := doc.Components.Schemas
	assert.Len(t, schemas, 3)

	union := schemas["returns.App.Service.Gateway.client"]
	require.NotNil(t, union)
	require.Len(t, union.Value.OneOf, 2)
	assert.Equal(t, "#/components/schemas/Vendor.Http.Client", union.Value.OneOf[0].Ref)
	assert.True(t, union.Value.OneOf[1].Value.Nullable)
	assert.Equal(t, `\App\Service\Gateway::client`, union.Value.Description)

	class := schemas["Vendor.Http.Client"]
	require.NotNil(t, class)
	assert.True(t, class.Value.Type.Is(openapi3.TypeObject))
	assert.Equal(t, `\Vendor\Http\Client`, class.Value.Title)

	ids := schemas["returns.ids"]
	require.NotNil(t, ids)
	assert.Empty(t, ids.Value.OneOf)
	assert.True(t, ids.Value.Type.Is(openapi3.TypeArray))

	_, undocumented := schemas["returns.plain"]
	assert.False(t, undocumented)
}

func TestBuildOpenAPI_SingleObjectUsesOneOf(t *testing.T) {
	doc := BuildOpenAPI(ports.ScanResult{Signatures: []ports.Signature{{
		Qualified:   `\make`,
		ReturnTypes: []types.Type{types.Object{FQSEN: `\Foo`}},
	}}}, Options{})

	ref := doc.Components.Schemas["returns.make"]
	require.NotNil(t, ref)
	require.Len(t, ref.Value.OneOf, 1)
	assert.Equal(t, "#/components/schemas/Foo", ref.Value.OneOf[0].Ref)
}

func TestBuildOpenAPI_DuplicateQualifiedNames(t *testing.T) {
	doc := BuildOpenAPI(ports.ScanResult{Signatures: []ports.Signature{
		{File: "a.php", Line: 3, Qualified: `\helper`, ReturnTypes: []types.Type{types.Scalar{Kind: types.KindInteger}}},
		{File: "b.php", Line: 9, Qualified: `\helper`, ReturnTypes: []types.Type{types.Scalar{Kind: types.KindString}}},
		{File: "c.php", Line: 1, Qualified: `\helper`, ReturnTypes: []types.Type{types.Array{}}},
	}}, Options{})

	schemas := doc.Components.Schemas
	require.Len(t, schemas, 3)
	require.Contains(t, schemas, "returns.helper")
	require.Contains(t, schemas, "returns.helper_2")
	require.Contains(t, schemas, "returns.helper_3")
	assert.True(t, schemas["returns.helper"].Value.Type.Is(openapi3.TypeInteger))
	assert.True(t, schemas["returns.helper_2"].Value.Type.Is(openapi3.TypeString))
	assert.True(t, schemas["returns.helper_3"].Value.Type.Is(openapi3.TypeArray))
}

func TestGenerateOpenAPI_Loads(t *testing.T) {
	out, err := GenerateOpenAPI(sampleResult(), Options{Title: "Acme"})
	require.NoError(t, err)

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(out))
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	assert.Equal(t, "Acme", doc.Info.Title)
	assert.Equal(t, "run-1", doc.Info.Version)
}

func TestScalarSchemas(t *testing.T) {
	assert.True(t, scalarSchema(types.KindInteger).Type.Is(openapi3.TypeInteger))
	assert.True(t, scalarSchema(types.KindFloat).Type.Is(openapi3.TypeNumber))
	assert.True(t, scalarSchema(types.KindString).Type.Is(openapi3.TypeString))
	assert.Equal(t, []any{true}, scalarSchema(types.KindTrue).Enum)
	assert.True(t, scalarSchema(types.KindThis).Type.Is(openapi3.TypeObject))
	assert.Equal(t, "mixed", scalarSchema(types.KindMixed).Title)
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "Vendor.Http.Client", ComponentName(`\Vendor\Http\Client`))
	assert.Equal(t, "App.Gateway.send", ComponentName(`\App\Gateway::send`))
	assert.Equal(t, "App._Foo", ComponentName(`\App\?Foo`))
}
