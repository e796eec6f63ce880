package control

import (
	"io"

	"golang.org/x/term"

	"github.com/arthur-debert/lazypony/pkg/errors"
)

// Controller applies style requests to a terminal.
//
// Apply receives the sink the caller is writing to. The ANSI controller
// writes escape sequences into it; the native controller ignores it and
// changes the console attributes instead.
type Controller interface {
	Name() string
	Apply(w io.Writer, r Request) error
	Reset(w io.Writer) error
	Size(w io.Writer) (cols, rows int, err error)
}

// Flusher is implemented by sinks that buffer output.
type Flusher interface {
	Flush() error
}

func flush(w io.Writer) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// ANSIController implements Controller with ANSI X3.64 escape sequences.
type ANSIController struct{}

// NewANSIController creates an ANSI controller
func NewANSIController() *ANSIController {
	return &ANSIController{}
}

func (c *ANSIController) Name() string { return "ansi" }

// Apply writes the encoded request to w and flushes it.
func (c *ANSIController) Apply(w io.Writer, r Request) error {
	if r.IsEmpty() {
		return nil
	}
	if _, err := io.WriteString(w, Encode(r)); err != nil {
		return err
	}
	return flush(w)
}

// Reset sends the full terminal reset sequence.
func (c *ANSIController) Reset(w io.Writer) error {
	if _, err := io.WriteString(w, ResetCode); err != nil {
		return err
	}
	return flush(w)
}

// Size reports the terminal dimensions when w is a terminal.
func (c *ANSIController) Size(w io.Writer) (int, int, error) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, errors.New(errors.ErrNotSupported, "output is not a terminal")
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrNotSupported, "failed to read terminal size")
	}
	return cols, rows, nil
}

// NullController is used when no terminal capability was detected. Style
// requests are dropped silently.
type NullController struct{}

// NewNullController creates a controller that ignores all styling
func NewNullController() *NullController {
	return &NullController{}
}

func (c *NullController) Name() string { return "none" }

func (c *NullController) Apply(io.Writer, Request) error {
	return nil
}

func (c *NullController) Reset(io.Writer) error {
	return nil
}

func (c *NullController) Size(io.Writer) (int, int, error) {
	return 0, 0, errors.New(errors.ErrNotSupported, "no terminal capability detected")
}
