package style

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/lazypony/pkg/control"
)

// NewRenderer returns a lipgloss renderer pinned to the 16 colour ANSI
// profile. Its output only uses codes the stream understands, so lipgloss
// styles also render on the native console.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI))
	r.SetColorProfile(termenv.ANSI)
	return r
}

// Lipgloss converts a request into an equivalent lipgloss style. Hidden has
// no lipgloss counterpart and is ignored.
func Lipgloss(r *lipgloss.Renderer, req control.Request) lipgloss.Style {
	s := r.NewStyle()
	for _, a := range req.Attributes() {
		switch a {
		case control.Default:
			s = r.NewStyle()
		case control.Bright:
			s = s.Bold(true)
		case control.Dim:
			s = s.Faint(true)
		case control.Underline:
			s = s.Underline(true)
		case control.Blink:
			s = s.Blink(true)
		case control.Reverse:
			s = s.Reverse(true)
		}
	}
	if fg := req.Foreground(); fg != control.NoColor {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(fg.Index())))
	}
	if bg := req.Background(); bg != control.NoColor {
		s = s.Background(lipgloss.Color(strconv.Itoa(bg.Index())))
	}
	return s
}
