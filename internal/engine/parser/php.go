package parser

import (
	"doctypes/internal/engine/typesfinder"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const (
	docCommentPrefix = "/**"
	// anonymousClass is the name PHP reports for `new class {}` instances.
	anonymousClass = "class@anonymous"
)

// PHPExtractor collects documented functions and methods together with the
// namespace and use declarations in scope of each one.
type PHPExtractor struct{}

// namespaceScope is one namespace block and the imports declared in it.
type namespaceScope struct {
	name      string
	uses      []typesfinder.UseDeclaration
	functions []int
}

// phpWalk holds per-file traversal state.
type phpWalk struct {
	engine *ExtractorEngine
	scopes []*namespaceScope
	scope  *namespaceScope
	class  string
}

func (e *PHPExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "php",
		ParsedAt: time.Now(),
	}

	w := &phpWalk{scope: &namespaceScope{}}
	w.scopes = []*namespaceScope{w.scope}
	w.engine = NewExtractorEngine(map[string]NodeHandler{
		"namespace_definition":      w.extractNamespace,
		"namespace_use_declaration": w.extractUses,
		"function_definition":       w.extractFunction,
		"method_declaration":        w.extractMethod,
		"class_declaration":         w.extractClassLike,
		"interface_declaration":     w.extractClassLike,
		"trait_declaration":         w.extractClassLike,
		"enum_declaration":          w.extractClassLike,
		"anonymous_class":           w.extractAnonymousClass,

		// Older grammars inline the class body into the `new` expression.
		"object_creation_expression": w.extractObjectCreation,
	})

	ctx := &ExtractionContext{Source: source, File: file}
	w.engine.Walk(ctx, root)

	for _, scope := range w.scopes {
		nsCtx := typesfinder.ContextFromUses(scope.name, scope.uses)
		for _, idx := range scope.functions {
			file.Functions[idx].Context = nsCtx
		}
	}
	return file, nil
}

func (w *phpWalk) extractNamespace(ctx *ExtractionContext, node *sitter.Node) bool {
	scope := &namespaceScope{name: ctx.Text(node.ChildByFieldName("name"))}
	w.scopes = append(w.scopes, scope)
	if scope.name != "" {
		ctx.File.Namespaces = append(ctx.File.Namespaces, scope.name)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		// Statement form: the namespace runs until the next declaration.
		w.scope = scope
		return true
	}

	outer := w.scope
	w.scope = scope
	w.engine.WalkChildren(ctx, body)
	w.scope = outer
	return true
}

func (w *phpWalk) extractUses(ctx *ExtractionContext, node *sitter.Node) bool {
	if hasKeywordChild(ctx, node, "function", "const") {
		return true
	}

	prefix := ""
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "namespace_name":
			prefix = strings.Trim(ctx.Text(child), typesfinder.NamespaceSeparator)
		case "namespace_use_clause", "namespace_use_group_clause":
			if use, ok := useFromClause(ctx, child, prefix); ok {
				w.scope.uses = append(w.scope.uses, use)
			}
		case "namespace_use_group":
			for j := uint(0); j < child.ChildCount(); j++ {
				clause := child.Child(j)
				if clause.Kind() != "namespace_use_clause" && clause.Kind() != "namespace_use_group_clause" {
					continue
				}
				if use, ok := useFromClause(ctx, clause, prefix); ok {
					w.scope.uses = append(w.scope.uses, use)
				}
			}
		}
	}
	return true
}

// useFromClause reads `Name`, `Name as Alias` or a group member. Function
// and constant imports are skipped since they never name classes.
func useFromClause(ctx *ExtractionContext, node *sitter.Node, prefix string) (typesfinder.UseDeclaration, bool) {
	if hasKeywordChild(ctx, node, "function", "const") {
		return typesfinder.UseDeclaration{}, false
	}

	var name, alias string
	afterAs := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "qualified_name", "namespace_name":
			if name == "" {
				name = ctx.Text(child)
			}
		case "name":
			if afterAs {
				alias = ctx.Text(child)
			} else if name == "" {
				name = ctx.Text(child)
			}
		case "namespace_aliasing_clause":
			alias = ctx.ChildText(child, "name")
		default:
			if !child.IsNamed() && strings.EqualFold(ctx.Text(child), "as") {
				afterAs = true
			}
		}
	}

	name = strings.Trim(name, typesfinder.NamespaceSeparator)
	if name == "" {
		return typesfinder.UseDeclaration{}, false
	}
	if prefix != "" {
		name = prefix + typesfinder.NamespaceSeparator + name
	}
	return typesfinder.UseDeclaration{Name: name, Alias: alias}, true
}

func hasKeywordChild(ctx *ExtractionContext, node *sitter.Node, keywords ...string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.IsNamed() {
			continue
		}
		text := ctx.Text(child)
		for _, kw := range keywords {
			if strings.EqualFold(text, kw) {
				return true
			}
		}
	}
	return false
}

func (w *phpWalk) extractClassLike(ctx *ExtractionContext, node *sitter.Node) bool {
	outer := w.class
	w.class = ctx.Text(node.ChildByFieldName("name"))
	w.engine.WalkChildren(ctx, node)
	w.class = outer
	return true
}

func (w *phpWalk) extractAnonymousClass(ctx *ExtractionContext, node *sitter.Node) bool {
	outer := w.class
	w.class = anonymousClass
	w.engine.WalkChildren(ctx, node)
	w.class = outer
	return true
}

func (w *phpWalk) extractObjectCreation(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "declaration_list" {
			return w.extractAnonymousClass(ctx, node)
		}
	}
	return false
}

func (w *phpWalk) extractFunction(ctx *ExtractionContext, node *sitter.Node) bool {
	// Functions declared inside a method body are still free functions.
	outer := w.class
	w.class = ""
	w.addCallable(ctx, node, KindFunction)
	w.engine.WalkChildren(ctx, node)
	w.class = outer
	return true
}

func (w *phpWalk) extractMethod(ctx *ExtractionContext, node *sitter.Node) bool {
	w.addCallable(ctx, node, KindMethod)
	return false
}

func (w *phpWalk) addCallable(ctx *ExtractionContext, node *sitter.Node, kind FunctionKind) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}
	class := ""
	if kind == KindMethod {
		class = w.class
	}

	w.scope.functions = append(w.scope.functions, len(ctx.File.Functions))
	ctx.File.Functions = append(ctx.File.Functions, Function{
		Name:     name,
		Class:    class,
		Kind:     kind,
		Doc:      docComment(ctx, node),
		Location: ctx.Location(node),
	})
}

// docComment returns the /** */ comment directly preceding node.
func docComment(ctx *ExtractionContext, node *sitter.Node) string {
	prev := node.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	text := ctx.Text(prev)
	if !strings.HasPrefix(text, docCommentPrefix) {
		return ""
	}
	return text
}
