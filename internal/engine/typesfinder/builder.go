package typesfinder

import (
	"strings"

	"doctypes/internal/engine/types"
)

// BuildType maps a token to its resolved type. Array-suffixed tokens always
// become a plain Array whatever their element type or depth.
func BuildType(token TypeToken, ctx *NamespaceContext) types.Type {
	if token.IsArray() || strings.EqualFold(token.Name, types.ArrayKeyword) {
		return types.Array{}
	}
	if kind, ok := types.LookupKeyword(token.Name); ok {
		return types.Scalar{Kind: kind}
	}
	return types.Object{FQSEN: ctx.Resolve(token.Name)}
}
