// Package vet reports errsum problems as an analysis pass: invalid annotated functions in
// source files, outputs which are missing or out of date, and directives in files built
// without the errsum tag.
package vet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/errsum/internal/config"
	"github.com/sirkon/errsum/internal/errsumrules"
	"github.com/sirkon/errsum/internal/generate"
	"github.com/sirkon/errsum/internal/resolve"
	"github.com/sirkon/errsum/internal/scan"
)

const doc = `errsum checks errsum source files and their generated counterparts

Source files are Go files built with the errsum tag only. They are ignored by the
build, so the analyzer loads them on its own, reports problems of annotated functions
and checks the generated files are up to date.`

// Analyzer is the errsum analysis pass.
var Analyzer = &analysis.Analyzer{
	Name:     "errsum",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var settings = config.Default()

func init() {
	Analyzer.Flags.StringVar(&settings.Tag, "tag", settings.Tag, "build tag of errsum source files")
	Analyzer.Flags.StringVar(&settings.Directive, "directive", settings.Directive, "directive name")
	Analyzer.Flags.StringVar(&settings.Suffix, "suffix", settings.Suffix, "output file name suffix")
}

func run(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	checkInactive(pector, scan.New(settings.Directive), pass.Report)

	resolver := &resolve.Scoped{
		Pkg:      pass.Pkg,
		Fallback: resolve.NewAssumed(settings.Packages),
	}
	g := generate.New(settings, resolver, zerolog.Nop())

	return nil, checkSources(context.Background(), g, pass.Fset, pass.IgnoredFiles, pass.ReadFile, pass.Report)
}

// checkInactive reports directives in doc comments of compiled functions.
func checkInactive(pector *inspector.Inspector, scanner *scan.Scanner, report func(analysis.Diagnostic)) {
	pector.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(node ast.Node) {
		fn := node.(*ast.FuncDecl) // No need to assert check since we only get func decls.
		if fn.Doc == nil {
			return
		}

		for _, c := range fn.Doc.List {
			if _, ok := scanner.Match(c.Text); ok {
				report(diagnostic(c.Pos(), errsumrules.InactiveDirective(), fmt.Sprintf(
					"%s is compiled, build the file with the %s tag only to have the directive applied",
					fn.Name.Name,
					settings.Tag,
				)))
			}
		}
	})
}

// checkSources runs the generator over ignored files of the package.
func checkSources(
	ctx context.Context,
	g *generate.Generator,
	fset *token.FileSet,
	files []string,
	readFile func(string) ([]byte, error),
	report func(analysis.Diagnostic),
) error {
	for _, name := range files {
		if !strings.HasSuffix(name, ".go") {
			continue
		}

		src, err := readFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		out, reps, err := g.File(ctx, fset, name, src)
		if err != nil {
			// Ignored files may belong to other platforms and not even parse with this toolchain.
			var syntaxErr *generate.SyntaxError
			if errors.As(err, &syntaxErr) {
				continue
			}
			return err
		}

		for _, r := range reps {
			report(diagnostic(r.Pos, r.RuleCode, r.Message))
		}
		if out == nil {
			continue
		}

		existing, err := readFile(out.Path)
		switch {
		case err != nil:
			report(diagnostic(out.Pos, errsumrules.StaleOutput(), fmt.Sprintf(
				"%s is missing, run errsum generate",
				filepath.Base(out.Path),
			)))
		case !bytes.Equal(existing, out.Content):
			report(diagnostic(out.Pos, errsumrules.StaleOutput(), fmt.Sprintf(
				"%s is out of date, run errsum generate",
				filepath.Base(out.Path),
			)))
		}
	}

	return nil
}

func diagnostic(pos token.Pos, rule errsumrules.Rule, message string) analysis.Diagnostic {
	return analysis.Diagnostic{
		Pos:      pos,
		Category: rule.Code(),
		Message:  rule.String() + ": " + message,
	}
}
