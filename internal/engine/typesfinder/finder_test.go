package typesfinder

import (
	"fmt"
	"sync"
	"testing"

	"doctypes/internal/engine/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how often the comment was read.
type countingSource struct {
	mu      sync.Mutex
	comment string
	reads   int
}

func (s *countingSource) DocComment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.comment
}

func docBlock(line string) string {
	return fmt.Sprintf("/**\n * %s\n */", line)
}

var (
	integer = types.Scalar{Kind: types.KindInteger}
	str     = types.Scalar{Kind: types.KindString}
)

func TestFind_ReturnTypes(t *testing.T) {
	tests := []struct {
		line string
		want []types.Type
	}{
		{"@return int|string", []types.Type{integer, str}},
		{"@return array", []types.Type{types.Array{}}},
		{`@return \stdClass`, []types.Type{types.Object{FQSEN: `\stdClass`}}},
		{"@return int|int[]|int[][]", []types.Type{integer, types.Array{}, types.Array{}}},
		{"@return int A comment about the return type", []types.Type{integer}},
		{"@return Foo[]|array", []types.Type{types.Array{}, types.Array{}}},
		{"@return ARRAY[]", []types.Type{types.Array{}}},
		{"@return void", []types.Type{types.Scalar{Kind: types.KindVoid}}},
		{"@return Boolean|NULL", []types.Type{types.Scalar{Kind: types.KindBoolean}, types.Scalar{Kind: types.KindNull}}},
		{"@return static|$this", []types.Type{types.Scalar{Kind: types.KindStatic}, types.Scalar{Kind: types.KindThis}}},
		{"", []types.Type{}},
	}

	finder := NewReturnTypeFinder()
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			source := &countingSource{comment: docBlock(tt.line)}
			got := finder.Find(source, nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, source.reads)
		})
	}
}

func TestFind_EmptyComment(t *testing.T) {
	source := &countingSource{}
	got := NewReturnTypeFinder().Find(source, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, source.reads)
}

func TestFind_NilSource(t *testing.T) {
	assert.Empty(t, NewReturnTypeFinder().Find(nil, nil))
}

func TestFind_SingleLineComment(t *testing.T) {
	got := Resolve("/** @return int|string */", nil)
	assert.Equal(t, []types.Type{integer, str}, got)
}

func TestFind_AliasedTypes(t *testing.T) {
	aliases := map[string]string{
		"Bar": "Bar",
		"Baz": `Taw\Taz`,
	}

	tests := []struct {
		name      string
		namespace string
		want      []types.Type
	}{
		{
			name: "no namespace",
			want: []types.Type{
				types.Object{FQSEN: `\Foo`},
				types.Object{FQSEN: `\Bar`},
				types.Object{FQSEN: `\Taw\Taz`},
				types.Object{FQSEN: `\Tab`},
			},
		},
		{
			name:      "Foo",
			namespace: "Foo",
			want: []types.Type{
				types.Object{FQSEN: `\Foo\Foo`},
				types.Object{FQSEN: `\Bar`},
				types.Object{FQSEN: `\Taw\Taz`},
				types.Object{FQSEN: `\Foo\Tab`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &countingSource{comment: docBlock("@return Foo|Bar|Baz|Tab")}
			ctx := NewNamespaceContext(tt.namespace, aliases)

			got := NewReturnTypeFinder().Find(source, ctx)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, source.reads)
		})
	}
}

func TestFind_KeywordsBypassAliases(t *testing.T) {
	ctx := NewNamespaceContext("App", map[string]string{"string": `Vendor\Str`, "Collection": `Illuminate\Support\Collection`})
	got := Resolve(docBlock("@return string|Collection[]|Collection"), ctx)
	assert.Equal(t, []types.Type{
		str,
		types.Array{},
		types.Object{FQSEN: `\Illuminate\Support\Collection`},
	}, got)
}

func TestFind_Idempotent(t *testing.T) {
	ctx := NewNamespaceContext("Foo", map[string]string{"Baz": `Taw\Taz`})
	source := CommentString(docBlock("@return Baz|int[]|Qux"))
	finder := NewReturnTypeFinder()

	first := finder.Find(source, ctx)
	second := finder.Find(source, ctx)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestFind_Concurrent(t *testing.T) {
	ctx := NewNamespaceContext("Foo", map[string]string{"Bar": "Bar"})
	source := CommentString(docBlock("@return Bar|Tab|int"))
	finder := NewReturnTypeFinder()
	want := finder.Find(source, ctx)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, finder.Find(source, ctx))
		}()
	}
	wg.Wait()
}

func TestFind_MalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"@return",
		"/** @return | */",
		"/** @return [][] */",
		"/** @return \\ */",
		"*/ /** @return",
		"\x00@return\x00",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			assert.NotNil(t, Resolve(in, nil))
		}, in)
	}
}
