// Package output renders links and operation results for the terminal or
// as JSON lines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/output/styles"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Options controls what a Printer shows and how.
type Options struct {
	// Format is config.FormatText or config.FormatJSON.
	Format string
	// Color is config.ColorAuto, ColorAlways or ColorNever.
	Color string
	// Verbose shows transformations and unchanged entries.
	Verbose bool
	// Status prefixes listed links with dangling: or attached:.
	Status bool
}

// Printer writes entries and results. Normal output goes to out; failures
// and notes go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	opts   Options
	styles *styles.Registry
	json   *json.Encoder
}

// New creates a Printer.
func New(out, errOut io.Writer, opts Options) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		opts:   opts,
		styles: styles.Default(newRenderer(out, opts.Color)),
	}
	if opts.Format == config.FormatJSON {
		p.json = json.NewEncoder(out)
	}
	return p
}

func newRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case mode == config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case mode == config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
		if !isTerminal(w) {
			r.SetHasDarkBackground(true)
		}
	case !isTerminal(w):
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Entry prints one listed link.
func (p *Printer) Entry(entry *types.LinkEntry) error {
	if p.json != nil {
		return p.json.Encode(entryJSON{LinkEntry: entry, Status: entry.StatusLabel()})
	}

	line := p.link(entry.Origin, entry.RawTarget)
	if p.opts.Status {
		style := "Attached"
		if entry.IsDangling {
			style = "Dangling"
		}
		line = p.styles.Render(style, entry.StatusLabel()) + ": " + line
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

// Result prints one operation result. In text mode failures are always
// shown, transformations only when verbose or dry-running, and unchanged
// entries only when verbose.
func (p *Printer) Result(r types.Result) error {
	if p.json != nil {
		return p.json.Encode(resultJSON{Result: r, Code: codeOf(r)})
	}

	op := p.styles.Render("Operation", r.Operation)

	switch r.Status {
	case types.StatusFailed:
		_, err := fmt.Fprintf(p.errOut, "%s: %s: %s\n", op, p.styles.Render("Error", r.Reason), p.link(r.Origin, r.OldTarget))
		return err

	case types.StatusUnchanged:
		if !p.opts.Verbose {
			return nil
		}
		_, err := fmt.Fprintf(p.errOut, "%s: %s: %s\n", op, p.styles.Render("Note", r.Reason), p.link(r.Origin, r.OldTarget))
		return err
	}

	if !p.opts.Verbose && !r.DryRun {
		return nil
	}

	var line string
	switch {
	case r.Command != "":
		line = fmt.Sprintf("%s: %s", op, p.styles.Render("Command", r.Command))
	case r.OldTarget == "" || r.NewTarget == "":
		// Creations have no old target and deletions no new one.
		target := r.NewTarget
		if target == "" {
			target = r.OldTarget
		}
		line = fmt.Sprintf("%s: %s", op, p.link(r.Origin, target))
	default:
		line = fmt.Sprintf("%s: %s -> (%s => %s)", op,
			p.styles.Render("Origin", r.Origin),
			p.styles.Render("Target", r.OldTarget),
			p.styles.Render("NewTarget", r.NewTarget))
	}
	if r.DryRun {
		line += " " + p.styles.Render("DryRun", "(dry run)")
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

// Error prints a fatal error.
func (p *Printer) Error(err error) {
	if p.json != nil {
		_ = json.NewEncoder(p.errOut).Encode(errorJSON{Error: errors.Reason(err), Code: errors.GetErrorCode(err)})
		return
	}
	fmt.Fprintf(p.errOut, "%s: %s\n", p.styles.Render("Error", "Error"), errors.Reason(err))
}

func (p *Printer) link(origin, target string) string {
	return p.styles.Render("Origin", origin) + " -> " + p.styles.Render("Target", target)
}

type entryJSON struct {
	*types.LinkEntry
	Status string `json:"status"`
}

type resultJSON struct {
	types.Result
	Code errors.ErrorCode `json:"code,omitempty"`
}

type errorJSON struct {
	Error string           `json:"error"`
	Code  errors.ErrorCode `json:"code"`
}

func codeOf(r types.Result) errors.ErrorCode {
	if r.Err == nil {
		return ""
	}
	return r.Code()
}
