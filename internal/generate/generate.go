// Package generate turns errsum source files into ordinary Go files.
//
// A source file is a Go file whose build constraint requires the errsum tag. Its output
// is the same file with the tag negated in the constraint and every annotated function
// replaced by its aggregate error declarations and the rewritten function.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/tools/go/ast/astutil"

	"github.com/sirkon/errsum/internal/config"
	"github.com/sirkon/errsum/internal/errsumrules"
	"github.com/sirkon/errsum/internal/report"
	"github.com/sirkon/errsum/internal/resolve"
	"github.com/sirkon/errsum/internal/scan"
	"github.com/sirkon/errsum/internal/synth"
	"github.com/sirkon/errsum/internal/typeref"
)

// Generator generates outputs for source files.
type Generator struct {
	cfg      *config.Config
	resolver resolve.Resolver
	scanner  *scan.Scanner
	log      zerolog.Logger
}

// New creates a Generator.
func New(cfg *config.Config, resolver resolve.Resolver, log zerolog.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		resolver: resolver,
		scanner:  scan.New(cfg.Directive),
		log:      log,
	}
}

// Output is the generated counterpart of a source file.
type Output struct {
	Source string
	Path   string

	// Pos is the package clause of the source file.
	Pos token.Pos

	Content    []byte
	Aggregates []string
}

// OutputPath returns the path of the file generated from source.
//
//	foo.go      → foo_errsum.go
//	foo_test.go → foo_errsum_test.go
func (g *Generator) OutputPath(source string) string {
	base := strings.TrimSuffix(source, ".go")
	if test, ok := strings.CutSuffix(base, "_test"); ok {
		return test + g.cfg.Suffix + "_test.go"
	}

	return base + g.cfg.Suffix + ".go"
}

// SyntaxError is returned by File for sources which are not valid Go.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return "parse " + e.Path + ": " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// function is an annotated function ready to be rewritten.
type function struct {
	directive scan.Directive
	sig       synth.Signature
	agg       *synth.Aggregate
}

// File generates the output for a single file. It returns nil output for files which are not
// errsum sources and for files with diagnostics. Files which are not valid Go give a
// *SyntaxError, other errors are failures not related to the file contents.
func (g *Generator) File(ctx context.Context, fset *token.FileSet, path string, src []byte) (*Output, []report.Report, error) {
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, nil, &SyntaxError{Path: path, Err: err}
	}

	lines, err := findBuildLines(file)
	if err != nil {
		return nil, nil, &SyntaxError{Path: path, Err: fmt.Errorf("build constraint: %w", err)}
	}
	if lines == nil || !requires(lines.expr, g.cfg.Tag) {
		return nil, nil, nil
	}

	var rep report.Reporter
	parsePhase := rep.Phase(report.ReportParse)
	if !conjunct(lines.expr, g.cfg.Tag) {
		// Both the source and the output would be built when the tag is optional.
		parsePhase.Reportf(
			errsumrules.DisjunctiveConstraint(),
			lines.goBuild.Pos(),
			"%q does not require the %s tag in every configuration, use %s && ...",
			lines.goBuild.Text,
			g.cfg.Tag,
			g.cfg.Tag,
		)
		return nil, rep.Reports(), nil
	}

	found := g.scanner.File(file)
	for _, s := range found.Stray {
		parsePhase.Reportf(errsumrules.DirectiveNotOnFunction(), s.Comment.Pos(), "directive is %s", s.Placement)
	}
	for _, d := range found.Duplicates {
		parsePhase.Reportf(errsumrules.DuplicateDirective(), d.Comment.Pos(), "%s already has a directive", d.Func.Name.Name)
	}

	resolved := map[string]string{}
	dir := filepath.Dir(path)
	var funcs []function
	for _, d := range found.Funcs {
		fn, err := g.function(ctx, fset, src, file, dir, d, &rep, resolved)
		if err != nil {
			return nil, nil, err
		}
		if fn != nil {
			funcs = append(funcs, *fn)
		}
	}

	checkRedeclared(file, funcs, rep.Phase(report.ReportSynth))
	if rep.Len() > 0 {
		g.log.Debug().Str("source", path).Int("diagnostics", rep.Len()).Msg("source file rejected")
		return nil, rep.Reports(), nil
	}

	content, err := g.render(fset, file, src, lines, funcs, resolved)
	if err != nil {
		return nil, nil, fmt.Errorf("render output of %s: %w", path, err)
	}

	out := &Output{
		Source:  path,
		Path:    g.OutputPath(path),
		Pos:     file.Package,
		Content: content,
	}
	for _, fn := range funcs {
		out.Aggregates = append(out.Aggregates, fn.agg.Name)
	}
	g.log.Debug().Str("source", path).Strs("aggregates", out.Aggregates).Msg("source file generated")

	return out, nil, nil
}

// function checks an annotated function and builds its aggregate. Problems are reported,
// the returned error is only set when the context is done.
func (g *Generator) function(
	ctx context.Context,
	fset *token.FileSet,
	src []byte,
	file *ast.File,
	dir string,
	d scan.Directive,
	rep *report.Reporter,
	resolved map[string]string,
) (*function, error) {
	entries, err := typeref.ParseList(d.Args)
	if err != nil {
		rep.Phase(report.ReportParse).Report(errsumrules.MalformedReference(), err.Error(), d.Comment.Pos())
		return nil, nil
	}

	sig, err := synth.SignatureOf(fset, src, file.Name.Name, d.Func)
	if err != nil {
		return nil, reportSynth(rep.Phase(report.ReportSynth), err, d.Comment.Pos())
	}
	sig.DropDoc(func(line string) bool {
		_, ok := g.scanner.Match(line)
		return ok
	})

	agg, err := synth.Build(sig, entries)
	if err != nil {
		return nil, reportSynth(rep.Phase(report.ReportSynth), err, d.Comment.Pos())
	}

	ok, err := g.resolveEntries(ctx, rep.Phase(report.ReportResolve), dir, d.Comment.Pos(), entries, resolved)
	if err != nil || !ok {
		return nil, err
	}

	return &function{
		directive: d,
		sig:       sig,
		agg:       agg,
	}, nil
}

// resolveEntries resolves every entry and records package names of referenced packages.
func (g *Generator) resolveEntries(
	ctx context.Context,
	phase *report.ReporterPhase,
	dir string,
	pos token.Pos,
	entries []typeref.Entry,
	resolved map[string]string,
) (bool, error) {
	type seenType struct {
		entry typeref.Entry
		typ   types.Type
	}

	ok := true
	var seen []seenType
	for _, e := range entries {
		res, err := g.resolver.Resolve(ctx, dir, e.Ref)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}

			rule := errsumrules.UnresolvedReference()
			if errors.Is(err, resolve.ErrNotError) {
				rule = errsumrules.NotAnErrorType()
			}
			phase.Report(rule, err.Error(), pos)
			ok = false
			continue
		}

		if !e.Ref.Local() && res.PackageName != "" {
			resolved[e.Ref.Package] = res.PackageName
		}
		if res.Type == nil {
			continue
		}

		for _, s := range seen {
			switch {
			case types.Identical(s.typ, res.Type):
				phase.Reportf(
					errsumrules.IdenticalTypes(),
					pos,
					"%s and %s denote the same type %s",
					s.entry,
					e,
					res.Type,
				)
				ok = false
			case shadows(s.entry, s.typ, e, res.Type):
				phase.Reportf(
					errsumrules.ShadowedVariant(),
					pos,
					"%s implements %s listed before it, its values would always convert to the %s variant, list %s first",
					e.Ref,
					s.entry.Ref,
					s.entry.Ref,
					e.Ref,
				)
				ok = false
			}
		}
		seen = append(seen, seenType{entry: e, typ: res.Type})
	}

	return ok, nil
}

// shadows tells whether the converter case of an earlier interface entry catches every value of
// a later entry. Instantiated generics are left out, their types are not instantiated here.
func shadows(earlier typeref.Entry, earlierType types.Type, later typeref.Entry, laterType types.Type) bool {
	if earlier.Ref.TypeArgs != "" || later.Ref.TypeArgs != "" {
		return false
	}
	if !types.IsInterface(earlierType) {
		return false
	}

	return types.AssignableTo(laterType, earlierType)
}

// reportSynth reports synthesis failures. Unknown errors are returned.
func reportSynth(phase *report.ReporterPhase, err error, pos token.Pos) error {
	var declErr *synth.DeclarationError
	if errors.As(err, &declErr) {
		if declErr.Pos.IsValid() {
			pos = declErr.Pos
		}
		phase.Report(declErr.Rule, declErr.Error(), pos)
		return nil
	}

	var res error
	for _, e := range multierr.Errors(err) {
		var collision *synth.NameCollisionError
		if !errors.As(e, &collision) {
			res = multierr.Append(res, e)
			continue
		}
		phase.Report(errsumrules.NameCollision(), collision.Error(), pos)
	}

	return res
}

// checkRedeclared reports generated names clashing with each other or with declarations of the file.
func checkRedeclared(file *ast.File, funcs []function, phase *report.ReporterPhase) {
	taken := map[string]bool{}
	for _, name := range topLevelNames(file) {
		taken[name] = true
	}

	for _, fn := range funcs {
		names := []string{fn.agg.Name, fn.agg.Converter}
		for _, v := range fn.agg.Variants {
			names = append(names, v.TypeName)
		}

		for _, name := range names {
			if taken[name] {
				phase.Reportf(
					errsumrules.AggregateRedeclared(),
					fn.directive.Comment.Pos(),
					"%s generated for %s is already declared in this file",
					name,
					fn.agg.Func,
				)
				continue
			}
			taken[name] = true
		}
	}
}

type edit struct {
	start int
	end   int
	text  string
}

func (g *Generator) render(
	fset *token.FileSet,
	file *ast.File,
	src []byte,
	lines *buildLines,
	funcs []function,
	resolved map[string]string,
) ([]byte, error) {
	tf := fset.File(file.Pos())
	off := tf.Offset

	imps := newImports(file, resolved)
	for _, fn := range funcs {
		imps.taken[fn.agg.Name] = true
		imps.taken[fn.agg.Converter] = true
		for _, v := range fn.agg.Variants {
			imps.taken[v.TypeName] = true
		}
	}

	edits := []edit{
		{
			start: off(lines.goBuild.Pos()),
			end:   off(lines.goBuild.End()),
			text:  "//go:build " + negate(lines.expr, g.cfg.Tag).String(),
		},
	}
	for _, c := range lines.plusBuild {
		end := off(c.End())
		if end < len(src) && src[end] == '\n' {
			end++
		}
		edits = append(edits, edit{start: off(c.Pos()), end: end})
	}

	for _, fn := range funcs {
		start := fn.directive.Func.Pos()
		if doc := fn.directive.Func.Doc; doc != nil {
			start = doc.Pos()
		}

		text := synth.Declarations(fn.agg, imps.qualify) + "\n" + synth.Rewrite(fn.sig, fn.agg)
		edits = append(edits, edit{
			start: off(start),
			end:   off(fn.directive.Func.End()),
			text:  strings.TrimSuffix(text, "\n"),
		})
	}
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start < edits[j].start
	})

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "// Code generated by errsum from %s. DO NOT EDIT.\n\n", filepath.Base(tf.Name()))
	last := 0
	for _, e := range edits {
		buf.Write(src[last:e.start])
		buf.WriteString(e.text)
		last = e.end
	}
	buf.Write(src[last:])

	ofset := token.NewFileSet()
	ofile, err := parser.ParseFile(ofset, tf.Name(), buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	for _, imp := range imps.additions() {
		astutil.AddNamedImport(ofset, ofile, imp.Name, imp.Path)
	}

	var res bytes.Buffer
	if err := format.Node(&res, ofset, ofile); err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}

	return format.Source(res.Bytes())
}
