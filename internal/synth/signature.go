package synth

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"github.com/sirkon/errsum/internal/errsumrules"
)

// Signature is the part of an annotated function declaration the synthesizer works with.
// Every text field is a verbatim slice of the source file.
type Signature struct {
	// Package is the name of the package declaring the function.
	Package string

	// Doc lines of the function, each one is a complete comment as written.
	Doc []string

	// Recv is the receiver with parentheses, like "(s *Server)". Empty for functions.
	Recv string

	// RecvType is the base type name of the receiver: "Server" for (s *Server) and (s Set[T]).
	RecvType string

	Name string

	// TypeParams is the type parameter list with brackets, empty when there is none.
	TypeParams string

	// Params is the parameter list with parentheses.
	Params string

	// Results are the declared success results.
	Results []Result

	// Body is the function body with braces.
	Body string

	// Taken lists identifiers the function scope already declares: receiver, parameter
	// and type parameter names.
	Taken []string

	Pos token.Pos
}

// Result is a single declared result. Results declared as "a, b int" are split into two.
type Result struct {
	Name string
	Type string
}

// Display returns the function name as it is shown in messages: ReadInt or Server.Load.
func (s *Signature) Display() string {
	if s.RecvType == "" {
		return s.Name
	}

	return s.RecvType + "." + s.Name
}

// DropDoc removes doc lines matching the predicate along with empty comment lines left at the end.
func (s *Signature) DropDoc(match func(line string) bool) {
	s.Doc = slices.DeleteFunc(s.Doc, match)
	for len(s.Doc) > 0 && strings.TrimSpace(s.Doc[len(s.Doc)-1]) == "//" {
		s.Doc = s.Doc[:len(s.Doc)-1]
	}
}

func (s *Signature) named() bool {
	return len(s.Results) > 0 && s.Results[0].Name != ""
}

// SignatureOf extracts the signature of decl from the source file it was parsed from.
func SignatureOf(fset *token.FileSet, src []byte, pkg string, decl *ast.FuncDecl) (Signature, error) {
	tf := fset.File(decl.Pos())
	text := func(from, to token.Pos) string {
		return string(src[tf.Offset(from):tf.Offset(to)])
	}

	sig := Signature{
		Package: pkg,
		Name:    decl.Name.Name,
		Pos:     decl.Pos(),
	}
	if decl.Doc != nil {
		for _, c := range decl.Doc.List {
			sig.Doc = append(sig.Doc, c.Text)
		}
	}

	if decl.Recv != nil {
		sig.Recv = text(decl.Recv.Opening, decl.Recv.Closing+1)
		if len(decl.Recv.List) > 0 {
			field := decl.Recv.List[0]
			sig.Taken = appendNames(sig.Taken, field.Names)
			var params []string
			sig.RecvType, params = receiverType(field.Type)
			sig.Taken = append(sig.Taken, params...)
		}
	}

	if tp := decl.Type.TypeParams; tp != nil {
		sig.TypeParams = text(tp.Opening, tp.Closing+1)
		for _, field := range tp.List {
			sig.Taken = appendNames(sig.Taken, field.Names)
		}
	}

	params := decl.Type.Params
	sig.Params = text(params.Opening, params.Closing+1)
	for _, field := range params.List {
		sig.Taken = appendNames(sig.Taken, field.Names)
	}

	if res := decl.Type.Results; res != nil {
		for _, field := range res.List {
			typ := text(field.Type.Pos(), field.Type.End())
			if len(field.Names) == 0 {
				sig.Results = append(sig.Results, Result{Type: typ})
				continue
			}
			for _, name := range field.Names {
				sig.Results = append(sig.Results, Result{Name: name.Name, Type: typ})
			}
		}

		last := res.List[len(res.List)-1].Type
		if id, ok := last.(*ast.Ident); ok && id.Name == "error" {
			return Signature{}, &DeclarationError{
				Func:   sig.Display(),
				Rule:   errsumrules.ErrorAlreadyDeclared(),
				Pos:    last.Pos(),
				Reason: "results must list success values only, the error result is synthesized",
			}
		}
	}

	if decl.Body == nil {
		return Signature{}, &DeclarationError{
			Func:   sig.Display(),
			Rule:   errsumrules.MissingBody(),
			Pos:    decl.Pos(),
			Reason: "function has no body",
		}
	}
	sig.Body = text(decl.Body.Lbrace, decl.Body.Rbrace+1)

	return sig, nil
}

// receiverType returns the base type name of a receiver type expression and the names
// of its type parameters.
func receiverType(expr ast.Expr) (string, []string) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	var indices []ast.Expr
	switch v := expr.(type) {
	case *ast.IndexExpr:
		expr, indices = v.X, []ast.Expr{v.Index}
	case *ast.IndexListExpr:
		expr, indices = v.X, v.Indices
	}

	var params []string
	for _, idx := range indices {
		if id, ok := idx.(*ast.Ident); ok && id.Name != "_" {
			params = append(params, id.Name)
		}
	}

	id, ok := expr.(*ast.Ident)
	if !ok {
		return "", params
	}

	return id.Name, params
}

func appendNames(dst []string, names []*ast.Ident) []string {
	for _, n := range names {
		if n.Name != "_" {
			dst = append(dst, n.Name)
		}
	}
	return dst
}
