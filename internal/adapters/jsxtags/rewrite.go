// Package jsxtags keeps JSX component references intact across bundling.
//
// The bundler may rename a module-scope binding when it hoists modules into
// one scope, which breaks tags whose name was captured before the rename.
// Transform parses a module, replaces every component tag that refers to a
// module-scope binding with a placeholder identifier and appends a marker
// call that references the real bindings. The bundler
// renames those references like any other. Render reads the marker back,
// removes it and substitutes the final names for the placeholders.
package jsxtags

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// MarkerFunc is the synthetic call that carries the placeholder table.
	MarkerFunc = "__preppyJSXTags"

	// PlaceholderPrefix starts every placeholder identifier.
	PlaceholderPrefix = "JSX_TAG_"
)

var placeholderPattern = regexp.MustCompile(`\b` + PlaceholderPrefix + `\d+\b`)

// Rewriter hands out placeholders that are unique across every module it
// transforms. It is safe for concurrent use.
type Rewriter struct {
	next atomic.Int64
}

// NewRewriter creates a new Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// State is the tag table of one transformed module.
type State struct {
	// Names lists the rewritten tag names in order of first appearance.
	Names []string
	// Placeholders maps a tag name to its placeholder.
	Placeholders map[string]string
}

// Rewritten reports whether the module had any tag to rewrite.
func (s *State) Rewritten() bool {
	return len(s.Names) > 0
}

// Transform rewrites the component tags of one module. Tags whose name is
// shadowed by a local binding are left for esbuild to resolve. When nothing
// is rewritten the source is returned unchanged.
func (r *Rewriter) Transform(ctx context.Context, src string, syntax Syntax) (string, *State, error) {
	m, err := parse(ctx, []byte(src), syntax)
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to parse module")
	}

	state := &State{Placeholders: make(map[string]string)}
	var b strings.Builder
	last := 0
	for _, tag := range m.tags {
		name := src[tag.start:tag.end]
		placeholder, ok := state.Placeholders[name]
		if !ok {
			placeholder = PlaceholderPrefix + strconv.FormatInt(r.next.Add(1), 10)
			state.Placeholders[name] = placeholder
			state.Names = append(state.Names, name)
		}

		b.WriteString(src[last:tag.start])
		b.WriteString(placeholder)
		last = tag.end
	}
	if !state.Rewritten() {
		return src, state, nil
	}
	b.WriteString(src[last:])

	b.WriteString("\n;")
	b.WriteString(MarkerFunc)
	b.WriteString("(")
	for i, name := range state.Names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(state.Placeholders[name]))
		b.WriteString(", ")
		b.WriteString(name)
	}
	b.WriteString(");\n")
	return b.String(), state, nil
}

// Edit is one replacement made by Render. Line is zero based; Column,
// Removed and Inserted count UTF-16 code units, like sourcemap columns.
type Edit struct {
	Line     int
	Column   int
	Removed  int
	Inserted int
}

// replacement swaps code[start:end] for text.
type replacement struct {
	start, end int
	text       string
}

// Render removes every marker call from bundled code and replaces each
// placeholder with the expression the marker recorded for it. A removed
// marker leaves its line breaks behind, so no line moves. The returned
// edits describe the column changes for ShiftSourceMap. A placeholder
// without an expression is an error; the code is never returned half
// rendered.
func Render(code string) (string, []Edit, error) {
	if !strings.Contains(code, PlaceholderPrefix) {
		return code, nil, nil
	}

	names := make(map[string]string)
	var markers []replacement
	for from := 0; ; {
		i := strings.Index(code[from:], MarkerFunc+"(")
		if i < 0 {
			break
		}
		start := from + i
		argsStart := start + len(MarkerFunc) + 1
		argsEnd := matchParen(code, argsStart)
		if argsEnd < 0 {
			return "", nil, zerr.Wrap(domain.ErrUnresolvedTag, "unterminated "+MarkerFunc+" call")
		}
		if err := collect(code[argsStart:argsEnd], names); err != nil {
			return "", nil, err
		}

		end := argsEnd + 1
		text := ""
		trimmed := strings.TrimLeft(code[end:], " \t")
		if strings.HasPrefix(trimmed, ";") {
			end = len(code) - len(trimmed) + 1
		} else {
			// The call sits inside an expression.
			text = "void 0"
		}
		text += strings.Repeat("\n", strings.Count(code[start:end], "\n"))
		markers = append(markers, replacement{start: start, end: end, text: text})
		from = end
	}

	repls := markers
	for _, loc := range placeholderPattern.FindAllStringIndex(code, -1) {
		if insideAny(markers, loc[0]) {
			continue
		}
		p := code[loc[0]:loc[1]]
		name, ok := names[p]
		if !ok {
			return "", nil, zerr.With(zerr.Wrap(domain.ErrUnresolvedTag, "no binding recorded for placeholder"), "placeholder", p)
		}
		repls = append(repls, replacement{start: loc[0], end: loc[1], text: name})
	}
	slices.SortFunc(repls, func(a, b replacement) int { return a.start - b.start })

	lines := lineStarts(code)
	var (
		b     strings.Builder
		edits []Edit
	)
	last := 0
	for _, r := range repls {
		b.WriteString(code[last:r.start])
		b.WriteString(r.text)
		edits = append(edits, r.edits(code, lines)...)
		last = r.end
	}
	b.WriteString(code[last:])
	return b.String(), edits, nil
}

func insideAny(repls []replacement, pos int) bool {
	for _, r := range repls {
		if pos >= r.start && pos < r.end {
			return true
		}
	}
	return false
}

// edits splits the replacement into one edit per line it touches. Any text
// it inserts lands on the first line.
func (r replacement) edits(code string, lines []int) []Edit {
	inserted := utf16Len(strings.TrimRight(r.text, "\n"))
	var edits []Edit
	for pos := r.start; ; {
		end := r.end
		nl := strings.IndexByte(code[pos:r.end], '\n')
		if nl >= 0 {
			end = pos + nl
		}
		line, _ := slices.BinarySearch(lines, pos+1)
		line--
		if removed := utf16Len(code[pos:end]); removed > 0 || inserted > 0 {
			edits = append(edits, Edit{
				Line:     line,
				Column:   utf16Len(code[lines[line]:pos]),
				Removed:  removed,
				Inserted: inserted,
			})
		}
		inserted = 0
		if nl < 0 {
			return edits
		}
		pos = end + 1
	}
}

// lineStarts returns the offset of every line start in code.
func lineStarts(code string) []int {
	starts := []int{0}
	for i := range len(code) {
		if code[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// collect parses the "placeholder", expression pairs of a marker call.
func collect(args string, into map[string]string) error {
	parts := splitArgs(args)
	if len(parts)%2 != 0 {
		return zerr.With(zerr.Wrap(domain.ErrUnresolvedTag, "malformed "+MarkerFunc+" call"), "arguments", args)
	}
	for i := 0; i < len(parts); i += 2 {
		key, err := strconv.Unquote(toDoubleQuoted(parts[i]))
		if err != nil || !strings.HasPrefix(key, PlaceholderPrefix) {
			return zerr.With(zerr.Wrap(domain.ErrUnresolvedTag, "malformed "+MarkerFunc+" call"), "arguments", args)
		}
		into[key] = parts[i+1]
	}
	return nil
}

// matchParen returns the index of the parenthesis closing the one just before start.
func matchParen(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'', '`':
			i = skipQuoted(s, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				if c == ')' {
					return i
				}
				return -1
			}
			depth--
		}
	}
	return -1
}

// splitArgs splits a call's argument list on its top-level commas.
func splitArgs(args string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '"', '\'', '`':
			i = skipQuoted(args, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(args[last:i]))
				last = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(args[last:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}

// skipQuoted returns the index of the quote closing the one at i.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(s)
}

func toDoubleQuoted(lit string) string {
	if len(lit) >= 2 && (lit[0] == '\'' || lit[0] == '`') && lit[len(lit)-1] == lit[0] {
		return strconv.Quote(lit[1 : len(lit)-1])
	}
	return lit
}

// isComponent reports whether a tag name is a reference rather than an
// intrinsic element: Button, UI.Button and ui.button are, div, my-element
// and svg:path are not.
func isComponent(name string) bool {
	if name == "" || strings.ContainsAny(name, ":-") {
		return false
	}
	c := name[0]
	return (c >= 'A' && c <= 'Z') || strings.Contains(name, ".")
}
