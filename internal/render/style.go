package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
	colorCyan   = "6"
	colorWhite  = "7"
	colorBlack  = "0"
)

// Styler wraps SGR styling. Its renderer is pinned to a color profile so
// output never depends on whether the process writes to a terminal.
type Styler struct {
	r     *lipgloss.Renderer
	plain bool
}

// NewStyler creates a Styler emitting 256-color SGR codes, or no codes at all
// when color is false.
func NewStyler(color bool) *Styler {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styler{r: r, plain: !color}
}

// NewStyle returns a lipgloss style bound to this Styler's renderer.
func (s *Styler) NewStyle() lipgloss.Style {
	return s.r.NewStyle()
}

// Render applies st to text.
func (s *Styler) Render(st lipgloss.Style, text string) string {
	if s.plain || text == "" {
		return text
	}
	return st.Render(text)
}

func (s *Styler) Fg(color, text string) string {
	return s.Render(s.r.NewStyle().Foreground(lipgloss.Color(color)), text)
}

func (s *Styler) Bold(text string) string {
	return s.Render(s.r.NewStyle().Bold(true), text)
}

func (s *Styler) Dim(text string) string {
	return s.Render(s.r.NewStyle().Faint(true), text)
}

// Signed colors text green when v >= 0 and red otherwise.
func (s *Styler) Signed(v float64, text string) string {
	if v >= 0 {
		return s.Fg(colorGreen, text)
	}
	return s.Fg(colorRed, text)
}
