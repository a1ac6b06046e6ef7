package report

import (
	"bytes"
	"errors"
	"go/token"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/sirkon/errsum/internal/errsumrules"
)

func TestReporter_ReportPhases(t *testing.T) {
	tests := []struct {
		name    string
		phase   ReportPhase
		rule    errsumrules.Rule
		message string
		want    string
	}{
		{
			name:    "parse-phase empty list",
			phase:   ReportParse,
			rule:    errsumrules.EmptySources(),
			message: "",
			want:    errsumrules.EmptySources().Description(),
		},
		{
			name:    "synth-phase collision",
			phase:   ReportSynth,
			rule:    errsumrules.NameCollision(),
			message: "variant StdIo is derived twice",
			want:    "variant StdIo is derived twice",
		},
		{
			name:    "resolve-phase unresolved",
			phase:   ReportResolve,
			rule:    errsumrules.UnresolvedReference(),
			message: "no type io.Nope",
			want:    "no type io.Nope",
		},
	}

	var r Reporter
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Phase(tt.phase).Report(tt.rule, tt.message, token.NoPos)
		})
	}

	reps := r.Reports()
	require.Len(t, reps, len(tests))
	for i, rep := range reps {
		want := tests[i]
		assert.Equal(t, want.phase, rep.Phase, want.name)
		assert.Equal(t, want.rule, rep.RuleCode, want.name)
		assert.Equal(t, want.want, rep.Message, want.name)
	}
}

func TestReporter_Diagnostics(t *testing.T) {
	fset := token.NewFileSet()
	src := []byte("package a\n\nfunc f() {}\n\nfunc g() {}\n")
	f := fset.AddFile("a.go", -1, len(src))
	f.SetLinesForContent(src)

	var r Reporter
	r.Phase(ReportSynth).Reportf(errsumrules.NameCollision(), f.Pos(24), "late %d", 2)
	r.Phase(ReportParse).Reportf(errsumrules.EmptySources(), f.Pos(11), "early %d", 1)

	ds := r.Diagnostics(fset)
	require.Len(t, ds, 2)
	assert.Equal(t, "a.go:3:1: ERS001: EmptySources: early 1", ds[0].Error())
	assert.Equal(t, "a.go:5:1: ERS010: NameCollision: late 2", ds[1].Error())

	err := r.Err(fset)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var d *Diagnostic
	require.True(t, errors.As(errs[1], &d))
	assert.Equal(t, errsumrules.ERS010NameCollision, d.RuleCode)

	var buf bytes.Buffer
	r.PrintSummary(&buf, fset)
	assert.Equal(t,
		"[parse] a.go:3:1: ERS001: EmptySources: early 1\n[synth] a.go:5:1: ERS010: NameCollision: late 2\n",
		buf.String(),
	)
}

func TestReporter_Empty(t *testing.T) {
	var r Reporter
	require.NoError(t, r.Err(token.NewFileSet()))
	require.Zero(t, r.Len())
}

func TestReporter_ConcurrencySafety(t *testing.T) {
	const n = 500
	var (
		r  Reporter
		wg sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Report(Report{
					Phase:    ReportSynth,
					RuleCode: errsumrules.NameCollision(),
					Message:  "parallel add",
					Pos:      token.Pos(i),
				})
				return
			}
			r.Merge([]Report{{
				Phase:    ReportParse,
				RuleCode: errsumrules.EmptySources(),
				Message:  "parallel merge",
				Pos:      token.Pos(i),
			}})
		}(i)
	}
	wg.Wait()

	reps := r.Reports()
	require.Len(t, reps, n)
	reps[0].Message = "changed"
	if r.Reports()[0].Message == "changed" {
		t.Fatalf("Reports() returned shared slice, expected copy")
	}
}
