package generate

import (
	"go/ast"
	"go/build/constraint"
)

// buildLines are the build constraint comments of a file.
type buildLines struct {
	goBuild   *ast.Comment
	plusBuild []*ast.Comment
	expr      constraint.Expr
}

// findBuildLines looks for build constraints in comments preceding the package clause.
func findBuildLines(file *ast.File) (*buildLines, error) {
	var res buildLines
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}

		for _, c := range group.List {
			switch {
			case constraint.IsGoBuild(c.Text):
				expr, err := constraint.Parse(c.Text)
				if err != nil {
					return nil, err
				}
				res.goBuild = c
				res.expr = expr
			case constraint.IsPlusBuild(c.Text):
				res.plusBuild = append(res.plusBuild, c)
			}
		}
	}

	if res.goBuild == nil {
		return nil, nil
	}

	return &res, nil
}

// requires reports whether the tag appears in the expression not negated.
func requires(expr constraint.Expr, tag string) bool {
	switch e := expr.(type) {
	case *constraint.TagExpr:
		return e.Tag == tag
	case *constraint.AndExpr:
		return requires(e.X, tag) || requires(e.Y, tag)
	case *constraint.OrExpr:
		return requires(e.X, tag) || requires(e.Y, tag)
	default:
		return false
	}
}

// conjunct reports whether the expression is false whenever the tag is not set: the tag is
// a term of the top level && chain.
func conjunct(expr constraint.Expr, tag string) bool {
	switch e := expr.(type) {
	case *constraint.TagExpr:
		return e.Tag == tag
	case *constraint.AndExpr:
		return conjunct(e.X, tag) || conjunct(e.Y, tag)
	default:
		return false
	}
}

// negate returns the expression with every occurrence of the tag inverted.
func negate(expr constraint.Expr, tag string) constraint.Expr {
	switch e := expr.(type) {
	case *constraint.TagExpr:
		if e.Tag == tag {
			return &constraint.NotExpr{X: e}
		}
		return e
	case *constraint.NotExpr:
		if t, ok := e.X.(*constraint.TagExpr); ok && t.Tag == tag {
			return t
		}
		return &constraint.NotExpr{X: negate(e.X, tag)}
	case *constraint.AndExpr:
		return &constraint.AndExpr{X: negate(e.X, tag), Y: negate(e.Y, tag)}
	case *constraint.OrExpr:
		return &constraint.OrExpr{X: negate(e.X, tag), Y: negate(e.Y, tag)}
	default:
		return expr
	}
}
