// Package report collects errsum diagnostics.
package report

import (
	"fmt"
	"go/token"
	"io"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/sirkon/errsum/internal/errsumrules"
)

// Reporter collects and classifies problems found while generating.
// The zero value is ready to use and safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase    ReportPhase
	RuleCode errsumrules.Rule
	Pos      token.Pos
	Message  string
}

// ReportPhase marks the stage where a report was generated.
type ReportPhase int

const (
	_           ReportPhase = iota
	ReportParse             // directive discovery and parsing
	ReportResolve           // type reference resolution
	ReportSynth             // aggregate synthesis and signature rewrite
	ReportCheck             // comparison with files on disk
)

func (p ReportPhase) String() string {
	switch p {
	case ReportParse:
		return "parse"
	case ReportResolve:
		return "resolve"
	case ReportSynth:
		return "synth"
	case ReportCheck:
		return "check"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a Reporter to a fixed phase.
type ReporterPhase struct {
	parent *Reporter
	phase  ReportPhase
}

// Phase returns a phase-bound reporter that sets the given phase for all reports produced through it.
func (r *Reporter) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(rep Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Merge appends all given records.
func (r *Reporter) Merge(reps []Report) {
	if len(reps) == 0 {
		return
	}

	r.mu.Lock()
	r.reports = append(r.reports, reps...)
	r.mu.Unlock()
}

// Report records a rule violation under the bound phase.
// An empty message is replaced with the rule description.
func (rp *ReporterPhase) Report(rule errsumrules.Rule, message string, pos token.Pos) {
	if message == "" {
		message = rule.Description()
	}
	rp.parent.Report(Report{
		Phase:    rp.phase,
		RuleCode: rule,
		Message:  message,
		Pos:      pos,
	})
}

// Reportf is Report with a formatted message.
func (rp *ReporterPhase) Reportf(rule errsumrules.Rule, pos token.Pos, format string, a ...any) {
	rp.Report(rule, fmt.Sprintf(format, a...), pos)
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Len returns the number of collected records.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// Diagnostics resolves positions of all collected records and sorts them by file and offset.
func (r *Reporter) Diagnostics(fset *token.FileSet) []*Diagnostic {
	reps := r.Reports()
	res := make([]*Diagnostic, 0, len(reps))
	for _, rep := range reps {
		res = append(res, &Diagnostic{
			Report:   rep,
			Position: fset.Position(rep.Pos),
		})
	}

	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].Position, res[j].Position
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Offset < b.Offset
	})

	return res
}

// Err combines all collected records into a single error. It is nil when nothing was reported.
func (r *Reporter) Err(fset *token.FileSet) error {
	var err error
	for _, d := range r.Diagnostics(fset) {
		err = multierr.Append(err, d)
	}
	return err
}

// PrintSummary prints all collected reports in a compact, human-readable form.
func (r *Reporter) PrintSummary(w io.Writer, fset *token.FileSet) {
	for _, d := range r.Diagnostics(fset) {
		fmt.Fprintf(w, "[%s] %s\n", d.Phase, d)
	}
}

// Diagnostic is a Report with its position resolved. It is an error.
type Diagnostic struct {
	Report
	Position token.Position
}

func (d *Diagnostic) Error() string {
	if !d.Position.IsValid() {
		return fmt.Sprintf("%s: %s", d.RuleCode, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Position, d.RuleCode, d.Message)
}
