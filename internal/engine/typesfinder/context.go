package typesfinder

import "strings"

// NamespaceSeparator separates namespace segments and marks absolute names
// when leading.
const NamespaceSeparator = `\`

// UseDeclaration is a single import in the scope of a declaration.
type UseDeclaration struct {
	Name  string
	Alias string
}

// EffectiveAlias returns the declared alias, or the last segment of Name.
func (u UseDeclaration) EffectiveAlias() string {
	if alias := strings.TrimSpace(u.Alias); alias != "" {
		return alias
	}
	name := strings.Trim(strings.TrimSpace(u.Name), NamespaceSeparator)
	if idx := strings.LastIndex(name, NamespaceSeparator); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// NamespaceContext is the lexical scope a comment is resolved in: the
// current namespace and its alias table. It is immutable once built. A nil
// *NamespaceContext is the global namespace with no aliases.
type NamespaceContext struct {
	name    string
	aliases map[string]string
}

// NewNamespaceContext copies aliases into a new context. Alias keys are
// matched case-insensitively; values are stored as absolute names.
func NewNamespaceContext(name string, aliases map[string]string) *NamespaceContext {
	ctx := &NamespaceContext{
		name:    strings.Trim(strings.TrimSpace(name), NamespaceSeparator),
		aliases: make(map[string]string, len(aliases)),
	}
	for alias, fq := range aliases {
		ctx.add(alias, fq)
	}
	return ctx
}

// ContextFromUses builds a context from use declarations in source order.
// A later declaration with the same alias replaces an earlier one.
func ContextFromUses(name string, uses []UseDeclaration) *NamespaceContext {
	ctx := NewNamespaceContext(name, nil)
	for _, use := range uses {
		ctx.add(use.EffectiveAlias(), use.Name)
	}
	return ctx
}

func (c *NamespaceContext) add(alias, fq string) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	fq = strings.Trim(strings.TrimSpace(fq), NamespaceSeparator)
	if alias == "" || fq == "" {
		return
	}
	c.aliases[alias] = NamespaceSeparator + fq
}

// Name returns the current namespace without separators at either end, or
// "" for the global namespace.
func (c *NamespaceContext) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Lookup returns the absolute name registered for alias.
func (c *NamespaceContext) Lookup(alias string) (string, bool) {
	if c == nil {
		return "", false
	}
	fq, ok := c.aliases[strings.ToLower(alias)]
	return fq, ok
}

// Aliases returns a copy of the alias table keyed by lowercase alias.
func (c *NamespaceContext) Aliases() map[string]string {
	out := make(map[string]string)
	if c == nil {
		return out
	}
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}

// Resolve turns a class-like name into an absolute name. Absolute names are
// returned unchanged. Otherwise the whole name is looked up as an alias;
// a miss resolves relative to the current namespace. Leading segments are
// never matched against aliases on their own.
func (c *NamespaceContext) Resolve(name string) string {
	if strings.HasPrefix(name, NamespaceSeparator) {
		return name
	}
	if fq, ok := c.Lookup(name); ok {
		return fq
	}
	if ns := c.Name(); ns != "" {
		return NamespaceSeparator + ns + NamespaceSeparator + name
	}
	return NamespaceSeparator + name
}
