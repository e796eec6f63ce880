package control

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/logging"
)

// Console attribute word bits. The low nibble is the foreground, the next
// nibble the background; bits above 0xff are left untouched.
const (
	FgBlue      uint16 = 1 << 0
	FgGreen     uint16 = 1 << 1
	FgRed       uint16 = 1 << 2
	FgIntensity uint16 = 1 << 3
	BgBlue      uint16 = 1 << 4
	BgGreen     uint16 = 1 << 5
	BgRed       uint16 = 1 << 6
	BgIntensity uint16 = 1 << 7

	FgMask = FgBlue | FgGreen | FgRed
	BgMask = BgBlue | BgGreen | BgRed
)

// foreground bits per colour, in colour table order
var consoleColors = [...]uint16{
	0,
	FgRed,
	FgGreen,
	FgGreen | FgRed,
	FgBlue,
	FgBlue | FgRed,
	FgBlue | FgGreen,
	FgBlue | FgGreen | FgRed,
}

// ConsoleFg returns the console foreground bits for a colour.
func ConsoleFg(c Color) uint16 { return consoleColors[c.Index()] }

// ConsoleBg returns the console background bits for a colour.
func ConsoleBg(c Color) uint16 { return consoleColors[c.Index()] << 4 }

// ConsoleState is the bookkeeping the native controller keeps next to the
// console attribute word.
type ConsoleState struct {
	// Default is the attribute word captured when the controller was created.
	Default uint16
	// RealFg is the foreground the user asked for, kept while dim or reverse
	// hide it from the console word.
	RealFg uint16

	Hidden bool
	Dim    bool
	// Reverse is toggled by each reverse request.
	Reverse bool
	// ReverseInput is set while the console word holds swapped colours, so
	// reads have to swap them back.
	ReverseInput bool
}

func (s *ConsoleState) undim(word uint16) uint16 {
	s.Dim = false
	if s.ReverseInput {
		return word&^BgMask | s.RealFg<<4
	}
	return word&^FgMask | s.RealFg
}

// transform updates the state for one attribute. It receives the current
// console word and returns the new word plus bits to OR into the output.
type transform func(s *ConsoleState, word uint16) (uint16, uint16)

var transforms = map[Attribute]transform{
	Default: func(s *ConsoleState, _ uint16) (uint16, uint16) {
		*s = ConsoleState{Default: s.Default, RealFg: s.Default & FgMask}
		return s.Default, 0
	},
	Bright: func(s *ConsoleState, word uint16) (uint16, uint16) {
		return s.undim(word), FgIntensity
	},
	Dim: func(s *ConsoleState, word uint16) (uint16, uint16) {
		s.Dim = true
		return word, 0
	},
	Reverse: func(s *ConsoleState, word uint16) (uint16, uint16) {
		s.Reverse = !s.Reverse
		return word, 0
	},
	Hidden: func(s *ConsoleState, word uint16) (uint16, uint16) {
		s.Hidden = true
		return word, 0
	},
}

func split(word uint16) (fg, fgi, bg, bgi uint16) {
	return word & FgMask, word & FgIntensity, word & BgMask, word & BgIntensity
}

func swap(fg, fgi, bg, bgi uint16) (uint16, uint16, uint16, uint16) {
	return bg >> 4, bgi >> 4, fg << 4, fgi << 4
}

// NativeController drives a console that is styled through an attribute
// word rather than escape sequences.
type NativeController struct {
	mu      sync.Mutex
	console Console
	state   ConsoleState
	logger  zerolog.Logger
}

// NewNativeController captures the current console attributes as the default.
func NewNativeController(console Console) (*NativeController, error) {
	word, err := console.Attributes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConsole, "failed to read console attributes")
	}
	return &NativeController{
		console: console,
		state:   ConsoleState{Default: word, RealFg: word & FgMask},
		logger:  logging.GetLogger("control.native"),
	}, nil
}

func (c *NativeController) Name() string { return "native" }

// State returns a copy of the current bookkeeping.
func (c *NativeController) State() ConsoleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Apply runs the request against the console. The state is only committed
// once the console accepted the new word.
func (c *NativeController) Apply(_ io.Writer, r Request) error {
	if r.IsEmpty() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	word, err := c.console.Attributes()
	if err != nil {
		return errors.Wrap(err, errors.ErrConsole, "failed to read console attributes")
	}
	st := c.state

	var color uint16
	for _, a := range r.attrs {
		fn, ok := transforms[a]
		if !ok {
			// underline and blink have no console equivalent
			continue
		}
		var bits uint16
		word, bits = fn(&st, word)
		color |= bits
	}

	high := word &^ 0xff
	cfg, cfgi, cbg, cbgi := split(word)
	if st.ReverseInput {
		cfg, cfgi, cbg, cbgi = swap(cfg, cfgi, cbg, cbgi)
	}
	if r.fg != NoColor {
		color |= ConsoleFg(r.fg)
		st.RealFg = ConsoleFg(r.fg)
	} else {
		color |= cfg
	}
	if r.bg != NoColor {
		color |= ConsoleBg(r.bg)
	} else {
		color |= cbg
	}
	color |= cfgi | cbgi

	fg, fgi, bg, bgi := split(color)
	if st.Dim {
		// intense black
		fg, fgi = 0, FgIntensity
	}
	if st.Reverse {
		fg, fgi, bg, bgi = swap(fg, fgi, bg, bgi)
	}
	st.ReverseInput = st.Reverse
	if st.Hidden {
		fg, fgi = bg>>4, bgi>>4
	}

	out := high | fg | fgi | bg | bgi
	if err := c.console.SetAttributes(out); err != nil {
		return errors.Wrap(err, errors.ErrConsole, "failed to set console attributes")
	}
	c.state = st
	c.logger.Trace().
		Stringer("request", r).
		Uint16("attributes", out).
		Msg("Console attributes updated")
	return nil
}

// Reset is not available on the native console.
func (c *NativeController) Reset(io.Writer) error {
	return errors.New(errors.ErrNotSupported, "reset is not implemented for the native console")
}

func (c *NativeController) Size(io.Writer) (int, int, error) {
	return 0, 0, errors.New(errors.ErrNotSupported, "size query is not implemented for the native console")
}
