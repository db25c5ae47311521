package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
// NO_COLOR and CLICOLOR=0 keep a terminal uncolored.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	styles := PlainStyles()
	if isTTY && !termenv.EnvNoColor() {
		styles = DefaultStyles()
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY, styles: styles}
}

// EffectiveMode resolves auto mode against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the active styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		r.Println("")
		return
	}
	r.Println(r.styles.Header.Render(text))
}

// Success writes a confirmation to standard output.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeJSON {
		return
	}
	r.Println(r.styles.Success.Render(msg))
}

// Warning writes a warning to the error output.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+msg))
}

// Muted writes de-emphasized text to standard output.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows as a terminal table or a markdown table.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, c := range header {
		h[i] = c
	}
	t.AppendHeader(h)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// Problems writes validity findings, or a confirmation when there are none.
func (r *Renderer) Problems(problems core.Problems) {
	if len(problems) == 0 {
		r.Success("No problems found")
		return
	}
	markdown := r.EffectiveMode() == ModeMarkdown
	for _, p := range problems {
		if markdown {
			r.Printf("- **%s** (%s): %s\n", p.Severity, p.Component, p.Message)
			continue
		}
		r.Printf("%s %s %s\n",
			r.severityStyle(p.Severity).Render(fmt.Sprintf("%-7s", p.Severity)),
			r.styles.Muted.Render("["+p.Component+"]"),
			p.Message)
	}
}

func (r *Renderer) severityStyle(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return r.styles.Error
	case core.SeverityWarning:
		return r.styles.Warning
	default:
		return r.styles.Info
	}
}

// StatusLine writes one item with a status marker: success, warning or error.
func (r *Renderer) StatusLine(name, status, detail string) {
	marker, style := "✓", r.styles.Success
	switch status {
	case "warning":
		marker, style = "!", r.styles.Warning
	case "error":
		marker, style = "✗", r.styles.Error
	}
	if r.EffectiveMode() == ModeMarkdown {
		marker = "-"
	}
	line := style.Render(marker) + " " + name
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}
