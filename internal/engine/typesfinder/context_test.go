package typesfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseDeclaration_EffectiveAlias(t *testing.T) {
	assert.Equal(t, "Taz", UseDeclaration{Name: `Taw\Taz`}.EffectiveAlias())
	assert.Equal(t, "Baz", UseDeclaration{Name: `Taw\Taz`, Alias: "Baz"}.EffectiveAlias())
	assert.Equal(t, "Bar", UseDeclaration{Name: `\Bar`}.EffectiveAlias())
}

func TestNamespaceContext_Resolve(t *testing.T) {
	aliases := map[string]string{"Bar": "Bar", "Baz": `Taw\Taz`}
	global := NewNamespaceContext("", aliases)
	foo := NewNamespaceContext("Foo", aliases)

	tests := []struct {
		ctx  *NamespaceContext
		name string
		want string
	}{
		{global, "Foo", `\Foo`},
		{global, "Bar", `\Bar`},
		{global, "Baz", `\Taw\Taz`},
		{global, "baz", `\Taw\Taz`},
		{global, `\Baz`, `\Baz`},
		{foo, "Foo", `\Foo\Foo`},
		{foo, "Bar", `\Bar`},
		{foo, "Tab", `\Foo\Tab`},
		{foo, `Baz\Sub`, `\Foo\Baz\Sub`},
		{global, `Baz\Sub`, `\Baz\Sub`},
		{nil, "Foo", `\Foo`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ctx.Resolve(tt.name), "%s in %q", tt.name, tt.ctx.Name())
	}
}

func TestNamespaceContext_NormalizesInput(t *testing.T) {
	ctx := NewNamespaceContext(`\App\Models\`, map[string]string{"Carbon": `\Carbon\Carbon`})
	assert.Equal(t, `App\Models`, ctx.Name())
	assert.Equal(t, `\App\Models\User`, ctx.Resolve("User"))
	assert.Equal(t, `\Carbon\Carbon`, ctx.Resolve("Carbon"))
}

func TestNamespaceContext_Immutable(t *testing.T) {
	aliases := map[string]string{"Bar": "Qux"}
	ctx := NewNamespaceContext("", aliases)
	aliases["Bar"] = "Changed"

	copied := ctx.Aliases()
	copied["bar"] = `\Other`

	fq, ok := ctx.Lookup("BAR")
	assert.True(t, ok)
	assert.Equal(t, `\Qux`, fq)
}

func TestContextFromUses(t *testing.T) {
	ctx := ContextFromUses("App", []UseDeclaration{
		{Name: `Vendor\Lib\Client`},
		{Name: `Vendor\Lib\Response`, Alias: "Res"},
		{Name: `Other\Client`},
	})

	assert.Equal(t, `\Other\Client`, ctx.Resolve("Client"))
	assert.Equal(t, `\Vendor\Lib\Response`, ctx.Resolve("res"))
	assert.Equal(t, `\App\Response`, ctx.Resolve("Response"))
	assert.Len(t, ctx.Aliases(), 2)
}

func TestNilNamespaceContext(t *testing.T) {
	var ctx *NamespaceContext
	assert.Equal(t, "", ctx.Name())
	_, ok := ctx.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, ctx.Aliases())
}
