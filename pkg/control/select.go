package control

import (
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/logging"
)

// Mode forces a backend or leaves the choice to detection.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeANSI   Mode = "ansi"
	ModeNative Mode = "native"
	ModeNone   Mode = "none"
)

// ParseMode parses a colour mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeANSI, ModeNative, ModeNone:
		return m, nil
	case "never", "off":
		return ModeNone, nil
	case "always":
		return ModeANSI, nil
	default:
		return ModeAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// DefaultANSITerminals are the TERM values known to understand ANSI codes.
var DefaultANSITerminals = []string{"linux", "xterm", "rxvt"}

// Environment holds the inputs backend selection depends on. It is read once
// at process start.
type Environment struct {
	Term       string
	GOOS       string
	NoColor    bool
	IsTerminal bool
}

// EnvironmentFromOS reads the environment for the given output file.
func EnvironmentFromOS(out *os.File) Environment {
	env := Environment{
		Term:    os.Getenv("TERM"),
		GOOS:    runtime.GOOS,
		NoColor: termenv.EnvNoColor(),
	}
	if out != nil {
		fd := out.Fd()
		env.IsTerminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return env
}

// SelectOptions tune Select.
type SelectOptions struct {
	Mode          Mode
	ANSITerminals []string
	// OpenConsole defaults to the platform console.
	OpenConsole func() (Console, error)
}

// Select picks the controller for this process.
func Select(env Environment, opts SelectOptions) Controller {
	logger := logging.GetLogger("control.select")

	terminals := opts.ANSITerminals
	if len(terminals) == 0 {
		terminals = DefaultANSITerminals
	}
	open := opts.OpenConsole
	if open == nil {
		open = OpenConsole
	}

	native := func() Controller {
		console, err := open()
		if err != nil {
			logger.Debug().Err(err).Msg("Native console unavailable, styling disabled")
			return NewNullController()
		}
		c, err := NewNativeController(console)
		if err != nil {
			logger.Debug().Err(err).Msg("Native console unreadable, styling disabled")
			return NewNullController()
		}
		return c
	}

	var c Controller
	switch opts.Mode {
	case ModeNone:
		c = NewNullController()
	case ModeANSI:
		c = NewANSIController()
	case ModeNative:
		c = native()
	default:
		switch {
		case env.NoColor:
			c = NewNullController()
		case !env.IsTerminal:
			c = NewNullController()
		case slices.Contains(terminals, env.Term):
			c = NewANSIController()
		case strings.Contains(env.GOOS, "windows"):
			c = native()
		case env.Term == "cygwin":
			c = NewANSIController()
		default:
			c = NewNullController()
		}
	}

	logger.Debug().
		Str("mode", string(opts.Mode)).
		Str("term", env.Term).
		Str("goos", env.GOOS).
		Bool("noColor", env.NoColor).
		Bool("tty", env.IsTerminal).
		Str("backend", c.Name()).
		Msg("Terminal controller selected")
	return c
}
