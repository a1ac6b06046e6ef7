package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sirkon/errsum/internal/errsumrules"
	"github.com/sirkon/errsum/internal/report"
)

// Mode chooses what Run does with outputs.
type Mode int

const (
	_ Mode = iota

	// ModeWrite writes outputs which differ from the files on disk.
	ModeWrite

	// ModeCheck reports outputs which differ from the files on disk.
	ModeCheck
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	default:
		return fmt.Sprintf("invalid(%d)", int(m))
	}
}

// Result sums up a run.
type Result struct {
	Fset     *token.FileSet
	Reporter *report.Reporter

	// Sources is the number of source files met.
	Sources int

	// Written is the number of files written.
	Written int
}

// Run processes files matching the patterns: file paths, directories and dir/... for
// directories with their subdirectories. The returned error combines every diagnostic
// when there is no failure to report instead.
func (g *Generator) Run(ctx context.Context, patterns []string, mode Mode) (*Result, error) {
	files, err := expand(patterns)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Fset:     token.NewFileSet(),
		Reporter: &report.Reporter{},
	}

	workers := g.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var sources, written atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	tag := []byte(g.cfg.Tag)
	for _, path := range files {
		eg.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			if !bytes.Contains(src, tag) {
				return nil
			}

			out, reps, err := g.File(ctx, res.Fset, path, src)
			if err != nil {
				return err
			}
			if out == nil && len(reps) == 0 {
				return nil
			}

			sources.Add(1)
			res.Reporter.Merge(reps)
			if out == nil {
				return nil
			}

			changed, err := g.emit(out, mode, res.Reporter.Phase(report.ReportCheck))
			if err != nil {
				return err
			}
			if changed {
				written.Add(1)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return res, err
	}

	res.Sources = int(sources.Load())
	res.Written = int(written.Load())
	g.log.Info().
		Stringer("mode", mode).
		Int("files", len(files)).
		Int("sources", res.Sources).
		Int("written", res.Written).
		Int("diagnostics", res.Reporter.Len()).
		Msg("errsum done")

	return res, res.Reporter.Err(res.Fset)
}

// emit writes or checks the output. It reports whether the output was written.
func (g *Generator) emit(out *Output, mode Mode, phase *report.ReporterPhase) (bool, error) {
	existing, err := os.ReadFile(out.Path)
	missing := errors.Is(err, fs.ErrNotExist)
	if err != nil && !missing {
		return false, fmt.Errorf("read output %s: %w", out.Path, err)
	}
	if !missing && bytes.Equal(existing, out.Content) {
		return false, nil
	}

	switch mode {
	case ModeCheck:
		state := "out of date"
		if missing {
			state = "missing"
		}
		phase.Reportf(errsumrules.StaleOutput(), out.Pos, "%s is %s", filepath.Base(out.Path), state)
		return false, nil
	case ModeWrite:
		if err := os.WriteFile(out.Path, out.Content, 0o644); err != nil {
			return false, fmt.Errorf("write output %s: %w", out.Path, err)
		}
		g.log.Debug().Str("output", out.Path).Msg("output written")
		return true, nil
	default:
		return false, fmt.Errorf("unsupported mode %s", mode)
	}
}

// expand turns patterns into the list of Go files to look at.
func expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	seen := map[string]bool{}
	var res []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			res = append(res, path)
		}
	}

	for _, pattern := range patterns {
		if dir, ok := cutRecursive(pattern); ok {
			err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if path != dir && skipDir(d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}
				if isGoFile(d.Name()) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", dir, err)
			}
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			return nil, fmt.Errorf("look up %s: %w", pattern, err)
		}
		if !info.IsDir() {
			add(pattern)
			continue
		}

		entries, err := os.ReadDir(pattern)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", pattern, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isGoFile(e.Name()) {
				add(filepath.Join(pattern, e.Name()))
			}
		}
	}

	return res, nil
}

func cutRecursive(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	return strings.CutSuffix(pattern, "/...")
}

// skipDir tells directories the go command ignores.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}

func isGoFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}
