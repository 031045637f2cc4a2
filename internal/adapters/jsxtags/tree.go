package jsxtags

import (
	"context"
	"slices"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	"go.trai.ch/zerr"
)

// Syntax selects the grammar a module is parsed with.
type Syntax int

const (
	// SyntaxJSX parses JavaScript with JSX.
	SyntaxJSX Syntax = iota
	// SyntaxTSX parses TypeScript with JSX.
	SyntaxTSX
)

var (
	jsxLanguage = sitter.NewLanguage(javascript.Language())
	tsxLanguage = sitter.NewLanguage(typescript.LanguageTSX())
)

func (s Syntax) language() *sitter.Language {
	if s == SyntaxTSX {
		return tsxLanguage
	}
	return jsxLanguage
}

// functionKinds open a new function scope.
var functionKinds = map[string]struct{}{
	"function_declaration":           {},
	"generator_function_declaration": {},
	"function_expression":            {},
	"generator_function":             {},
	"arrow_function":                 {},
	"method_definition":              {},
}

// tagSpan is the byte range of a tag name in the source.
type tagSpan struct {
	start, end int
}

type scope map[string]struct{}

func (s scope) has(name string) bool {
	_, ok := s[name]
	return ok
}

// module is the view of one source file that Transform needs: its
// module-scope bindings and the component tags that refer to them.
type module struct {
	src   []byte
	bound scope
	tags  []tagSpan
}

// parse finds the tags whose root name resolves to a module-scope binding.
// A source with syntax errors yields no tags; esbuild reports the errors.
func parse(ctx context.Context, src []byte, syntax Syntax) (*module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(syntax.language()); err != nil {
		return nil, err
	}

	tree := parser.ParseWithOptions(func(i int, _ sitter.Point) []byte {
		if i < len(src) {
			return src[i:]
		}
		return []byte{}
	}, nil, &sitter.ParseOptions{
		ProgressCallback: func(sitter.ParseState) bool { return ctx.Err() != nil },
	})
	if tree == nil {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}
		return nil, zerr.New("parser returned no tree")
	}
	defer tree.Close()

	m := &module{src: src, bound: make(scope)}
	root := tree.RootNode()
	if root.HasError() {
		return m, nil
	}

	for _, stmt := range namedChildren(root) {
		m.declare(stmt, m.bound)
	}
	m.hoistVars(root, m.bound)
	m.walk(root, nil)

	slices.SortFunc(m.tags, func(a, b tagSpan) int { return a.start - b.start })
	return m, nil
}

func (m *module) text(n *sitter.Node) string {
	return n.Utf8Text(m.src)
}

// walk visits n with the stack of scopes that enclose it, module scope excluded.
func (m *module) walk(n *sitter.Node, scopes []scope) {
	typ := n.Kind()
	if _, ok := functionKinds[typ]; ok {
		s := make(scope)
		if typ != "function_declaration" && typ != "generator_function_declaration" && typ != "method_definition" {
			// A named function expression sees its own name.
			m.pattern(n.ChildByFieldName("name"), s)
		}
		m.pattern(n.ChildByFieldName("parameters"), s)
		m.pattern(n.ChildByFieldName("parameter"), s)
		if body := n.ChildByFieldName("body"); body != nil {
			m.hoistVars(body, s)
		}
		scopes = append(scopes, s)
	}

	switch typ {
	case "statement_block":
		scopes = append(scopes, m.blockScope(namedChildren(n)))
	case "switch_body":
		var stmts []*sitter.Node
		for _, c := range namedChildren(n) {
			stmts = append(stmts, namedChildren(c)...)
		}
		scopes = append(scopes, m.blockScope(stmts))
	case "for_statement":
		s := make(scope)
		for _, c := range namedChildren(n) {
			if c.Kind() == "lexical_declaration" {
				m.declare(c, s)
			}
		}
		scopes = append(scopes, s)
	case "for_in_statement":
		s := make(scope)
		if left := n.ChildByFieldName("left"); left != nil {
			head := string(m.src[n.StartByte():left.StartByte()])
			if strings.Contains(head, "let") || strings.Contains(head, "const") || strings.Contains(head, "var") {
				m.pattern(left, s)
			}
		}
		scopes = append(scopes, s)
	case "catch_clause":
		s := make(scope)
		m.pattern(n.ChildByFieldName("parameter"), s)
		scopes = append(scopes, s)
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		if name := n.ChildByFieldName("name"); name != nil {
			m.tag(name, scopes)
		}
	}

	for _, c := range namedChildren(n) {
		m.walk(c, scopes)
	}
}

// tag records name when it is a component whose root is bound at module
// scope and not shadowed by an enclosing scope.
func (m *module) tag(name *sitter.Node, scopes []scope) {
	text := m.text(name)
	if !isComponent(text) {
		return
	}
	root, _, _ := strings.Cut(text, ".")
	for _, s := range scopes {
		if s.has(root) {
			return
		}
	}
	if !m.bound.has(root) {
		return
	}
	m.tags = append(m.tags, tagSpan{start: int(name.StartByte()), end: int(name.EndByte())})
}

// blockScope collects the block-scoped declarations among stmts.
func (m *module) blockScope(stmts []*sitter.Node) scope {
	s := make(scope)
	for _, stmt := range stmts {
		if stmt.Kind() != "variable_declaration" {
			m.declare(stmt, s)
		}
	}
	return s
}

// declare adds the names a statement declares to into.
func (m *module) declare(stmt *sitter.Node, into scope) {
	switch stmt.Kind() {
	case "import_statement":
		m.imports(stmt, into)
	case "export_statement":
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			m.declare(decl, into)
		}
	case "lexical_declaration", "variable_declaration":
		for _, d := range namedChildren(stmt) {
			if d.Kind() == "variable_declarator" {
				m.pattern(d.ChildByFieldName("name"), into)
			}
		}
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration", "enum_declaration":
		// Class names are type identifiers in the TSX grammar.
		if name := stmt.ChildByFieldName("name"); name != nil {
			into[m.text(name)] = struct{}{}
		}
	}
}

// imports adds the local names of an import statement. Type-only imports
// bind no value.
func (m *module) imports(stmt *sitter.Node, into scope) {
	if strings.HasPrefix(m.text(stmt), "import type ") {
		return
	}
	for _, clause := range namedChildren(stmt) {
		if clause.Kind() != "import_clause" {
			continue
		}
		for _, c := range namedChildren(clause) {
			switch c.Kind() {
			case "identifier":
				into[m.text(c)] = struct{}{}
			case "namespace_import":
				for _, id := range namedChildren(c) {
					m.pattern(id, into)
				}
			case "named_imports":
				for _, spec := range namedChildren(c) {
					if spec.Kind() != "import_specifier" || strings.HasPrefix(m.text(spec), "type ") {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					m.pattern(local, into)
				}
			}
		}
	}
}

// pattern adds the names bound by a binding pattern or parameter list.
func (m *module) pattern(n *sitter.Node, into scope) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		into[m.text(n)] = struct{}{}
	case "pair_pattern":
		m.pattern(n.ChildByFieldName("value"), into)
	case "assignment_pattern", "object_assignment_pattern":
		m.pattern(n.ChildByFieldName("left"), into)
	case "required_parameter", "optional_parameter":
		m.pattern(n.ChildByFieldName("pattern"), into)
	case "object_pattern", "array_pattern", "rest_pattern", "formal_parameters":
		for _, c := range namedChildren(n) {
			m.pattern(c, into)
		}
	}
}

// hoistVars adds the var declarations under n that belong to n's function.
func (m *module) hoistVars(n *sitter.Node, into scope) {
	for _, c := range namedChildren(n) {
		if _, ok := functionKinds[c.Kind()]; ok {
			continue
		}
		if c.Kind() == "variable_declaration" {
			m.declare(c, into)
		}
		m.hoistVars(c, into)
	}
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := n.NamedChildCount()
	children := make([]*sitter.Node, 0, count)
	for i := range count {
		if c := n.NamedChild(i); c != nil {
			children = append(children, c)
		}
	}
	return children
}
