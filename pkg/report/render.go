package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Column headers and layout caps for the rendered table.
const (
	headerTimer = "TIMER"
	headerHits  = "HITS"
	maxNameLen  = 60
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	remainderStyle = lipgloss.NewStyle().Faint(true)
)

// RenderOptions controls table rendering.
type RenderOptions struct {
	// Color styles the header and remainder rows with ANSI sequences.
	Color bool
}

// Render writes the report as a text table: a frequency header when
// calibrated, the episode total, one row per hit category in declaration
// order, and the remainder row.
func (r *Report) Render(w io.Writer, opts RenderOptions) error {
	if r.Frequency > 0 {
		if _, err := fmt.Fprintf(w, "Calculated cycle frequency: %s\n", r.Frequency); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total time: %v (%d cycles)\n",
			r.Frequency.Duration(r.TotalCycles), r.TotalCycles); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Total time: %d cycles\n", r.TotalCycles); err != nil {
			return err
		}
	}

	nameWidth := len(RemainderLabel)
	hitsWidth := len(headerHits)
	cyclesWidth := len(fmt.Sprintf("%d", r.RemainderCycles))
	for _, row := range r.Rows {
		if n := len(truncateName(row.Name)); n > nameWidth {
			nameWidth = n
		}
		if n := len(fmt.Sprintf("%d", row.Hits)); n > hitsWidth {
			hitsWidth = n
		}
		if n := len(fmt.Sprintf("%d", row.ExclusiveCycles)); n > cyclesWidth {
			cyclesWidth = n
		}
	}
	if n := len(headerTimer); n > nameWidth {
		nameWidth = n
	}
	if n := len("EXCLUSIVE"); n > cyclesWidth {
		cyclesWidth = n
	}

	header := fmt.Sprintf("%-*s | %*s | %*s cycles |  EXCL%% |  INCL%%",
		nameWidth, headerTimer, hitsWidth, headerHits, cyclesWidth, "EXCLUSIVE")
	if opts.Color {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, row := range r.Rows {
		name := truncateName(row.Name)
		line := fmt.Sprintf("%-*s | %*d | %*d cycles | %5.2f%% | %5.2f%%",
			nameWidth, name, hitsWidth, row.Hits,
			cyclesWidth, row.ExclusiveCycles, row.PctExclusive, row.PctInclusive)
		if gbs := row.GBPerSec(r.Frequency); gbs > 0 {
			line += fmt.Sprintf(" | %5.3f GB/s", gbs)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	remainder := fmt.Sprintf("%-*s | %*s | %*d cycles | %5.2f%% |",
		nameWidth, RemainderLabel, hitsWidth, "",
		cyclesWidth, r.RemainderCycles, r.PctRemainder)
	if opts.Color {
		remainder = remainderStyle.Render(remainder)
	}
	_, err := fmt.Fprintln(w, remainder)
	return err
}

// truncateName caps a category name at maxNameLen bytes, backing up to a rune
// boundary so a multi-byte character is never split.
func truncateName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	cut := maxNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// String renders the report without styling.
func (r *Report) String() string {
	var b strings.Builder
	_ = r.Render(&b, RenderOptions{})
	return b.String()
}
