package audit

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Status is the outcome of a single element check.
type Status string

const (
	// StatusPassed means the primary locator resolved the element.
	StatusPassed Status = "passed"
	// StatusHealed means the element was recovered through a generated locator.
	StatusHealed Status = "healed"
	// StatusFailed means neither the primary locator nor healing found it.
	StatusFailed Status = "failed"
)

// ElementResult records the outcome of one element check.
type ElementResult struct {
	Page            string
	Element         string
	Locator         string
	ResolvedLocator string
	Status          Status
	Duration        time.Duration
	Error           string
}

// Report aggregates a suite run.
type Report struct {
	Suite      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []ElementResult
}

// Passed reports whether no element check failed. Healed checks pass: the
// point of healing is that a markup change does not fail the run, it gets
// surfaced as a locator that needs updating.
func (r *Report) Passed() bool {
	return r.CountByStatus(StatusFailed) == 0
}

// CountByStatus returns how many element checks finished with the status.
func (r *Report) CountByStatus(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Formatter renders audit reports for humans.
type Formatter struct {
	writer io.Writer
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
}

// NewFormatter creates a report formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		writer: w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
	}
}

// Print renders every element result and a totals line.
func (f *Formatter) Print(report *Report) {
	fmt.Fprintf(f.writer, "\nSuite: %s\n", report.Suite)
	fmt.Fprintln(f.writer, "==============================")

	for _, res := range report.Results {
		switch res.Status {
		case StatusPassed:
			f.green.Fprintf(f.writer, "  ✅ %s/%s", res.Page, res.Element)
			f.gray.Fprintf(f.writer, "  %s (%s)\n", res.Locator, res.Duration.Round(time.Millisecond))
		case StatusHealed:
			f.yellow.Fprintf(f.writer, "  🩹 %s/%s", res.Page, res.Element)
			f.gray.Fprintf(f.writer, "  %s → %s (%s)\n", res.Locator, res.ResolvedLocator, res.Duration.Round(time.Millisecond))
		case StatusFailed:
			f.red.Fprintf(f.writer, "  ❌ %s/%s", res.Page, res.Element)
			f.gray.Fprintf(f.writer, "  %s: %s\n", res.Locator, res.Error)
		}
	}

	passed := report.CountByStatus(StatusPassed)
	healed := report.CountByStatus(StatusHealed)
	failed := report.CountByStatus(StatusFailed)

	fmt.Fprintf(f.writer, "\nTotal: %d  ", len(report.Results))
	f.green.Fprintf(f.writer, "passed: %d  ", passed)
	f.yellow.Fprintf(f.writer, "healed: %d  ", healed)
	f.red.Fprintf(f.writer, "failed: %d", failed)
	fmt.Fprintf(f.writer, "  (%s)\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	if healed > 0 {
		f.yellow.Fprintln(f.writer, "\nHealed locators should be updated in the suite definition.")
	}
}
