// Package scan finds errsum directives in parsed Go files.
package scan

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/sirkon/rbtree"
	"golang.org/x/tools/go/ast/inspector"
)

// Directive is a directive attached to a function declaration.
type Directive struct {
	Func    *ast.FuncDecl
	Comment *ast.Comment

	// Args is the directive text after its name.
	Args string
}

// Placement tells where a stray directive was found.
type Placement int

const (
	_ Placement = iota
	PlacementDetached
	PlacementFunction
	PlacementDeclaration
)

func (p Placement) String() string {
	switch p {
	case PlacementDetached:
		return "detached from any declaration"
	case PlacementFunction:
		return "inside a function"
	case PlacementDeclaration:
		return "attached to a non-function declaration"
	default:
		return "unknown placement"
	}
}

// Stray is a directive which is not a part of a function doc comment.
type Stray struct {
	Comment   *ast.Comment
	Placement Placement
}

// Result is what was found in a file.
type Result struct {
	// Funcs lists functions with their first directive in source order.
	Funcs []Directive

	// Duplicates lists directives following the first one in the same doc comment.
	Duplicates []Directive

	Stray []Stray
}

// Scanner finds directives with the given name, like "errsum:errors".
type Scanner struct {
	prefix string
}

// New creates a Scanner for the directive name.
func New(directive string) *Scanner {
	return &Scanner{prefix: "//" + directive}
}

// Match reports whether a comment is the directive and returns its arguments.
func (s *Scanner) Match(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, s.prefix)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// File scans a file parsed with comments.
func (s *Scanner) File(file *ast.File) *Result {
	var res Result
	attached := map[*ast.Comment]bool{}

	pector := inspector.New([]*ast.File{file})
	pector.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(node ast.Node) {
		fn := node.(*ast.FuncDecl)
		if fn.Doc == nil {
			return
		}

		found := false
		for _, c := range fn.Doc.List {
			args, ok := s.Match(c.Text)
			if !ok {
				continue
			}

			attached[c] = true
			d := Directive{
				Func:    fn,
				Comment: c,
				Args:    args,
			}
			if found {
				res.Duplicates = append(res.Duplicates, d)
				continue
			}
			found = true
			res.Funcs = append(res.Funcs, d)
		}
	})

	var spans *rbtree.Tree[*declSpan]
	for _, group := range file.Comments {
		for _, c := range group.List {
			if attached[c] {
				continue
			}
			if _, ok := s.Match(c.Text); !ok {
				continue
			}

			if spans == nil {
				spans = indexDecls(file)
			}
			res.Stray = append(res.Stray, Stray{
				Comment:   c,
				Placement: place(spans, c.Pos()),
			})
		}
	}

	return &res
}

// declSpan is a top level declaration with its doc comment.
type declSpan struct {
	start token.Pos
	end   token.Pos
	fn    bool
}

// Cmp orders disjoint spans by position, overlapping ones are equal.
func (n *declSpan) Cmp(other *declSpan) int {
	if n.end < other.start {
		return -1
	}
	if n.start > other.end {
		return 1
	}
	return 0
}

func indexDecls(file *ast.File) *rbtree.Tree[*declSpan] {
	t := rbtree.New[*declSpan]()
	for _, decl := range file.Decls {
		span := &declSpan{
			start: decl.Pos(),
			end:   decl.End(),
		}
		switch d := decl.(type) {
		case *ast.FuncDecl:
			span.fn = true
			if d.Doc != nil {
				span.start = d.Doc.Pos()
			}
		case *ast.GenDecl:
			if d.Doc != nil {
				span.start = d.Doc.Pos()
			}
		}
		t.InsertReturn(span)
	}

	return t
}

func place(spans *rbtree.Tree[*declSpan], pos token.Pos) Placement {
	span := spans.Search(&declSpan{start: pos, end: pos})
	switch {
	case span == nil:
		return PlacementDetached
	case span.fn:
		return PlacementFunction
	default:
		return PlacementDeclaration
	}
}
