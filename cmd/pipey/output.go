package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorOK     = lipgloss.Color("#2CD7C7")
	colorError  = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#6C7A89")
)

// printer writes command output, styled when w is a terminal.
type printer struct {
	w      io.Writer
	styled bool

	title lipgloss.Style
	label lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		styled: isTerminal(w),
		title:  r.NewStyle().Bold(true).Foreground(colorAccent),
		label:  r.NewStyle().Foreground(colorMuted),
		ok:     r.NewStyle().Bold(true).Foreground(colorOK),
		fail:   r.NewStyle().Bold(true).Foreground(colorError),
		muted:  r.NewStyle().Foreground(colorMuted),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) Title(s string) {
	fmt.Fprintln(p.w, p.title.Render(s))
}

func (p *printer) Field(label string, value any) {
	fmt.Fprintf(p.w, "  %s %v\n", p.label.Render(label+":"), value)
}

func (p *printer) Line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) Muted(s string) {
	fmt.Fprintln(p.w, p.muted.Render(s))
}

func (p *printer) Status(ok bool, s string) {
	if ok {
		fmt.Fprintln(p.w, p.ok.Render(s))
		return
	}
	fmt.Fprintln(p.w, p.fail.Render(s))
}

// Table renders rows under headers. Plain output uses a borderless layout.
func (p *printer) Table(headers []string, rows [][]string) {
	t := table.New().Headers(headers...).Rows(rows...)
	if p.styled {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(p.muted).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return p.title.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
			StyleFunc(func(int, int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(2)
			})
	}
	fmt.Fprintln(p.w, t.String())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
