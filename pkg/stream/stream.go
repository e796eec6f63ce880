// Package stream wraps an output sink so text can carry inline style markers.
//
// Callers write strings that interleave plain text with SGR markers produced
// by the style package. The Stream forwards plain text untouched and routes
// each marker through the process controller:
//
//	s := stream.New(os.Stdout, ctrl)
//	fmt.Fprint(s, "spam"+style.MustColor([]string{"bright"}, "yellow", "")+"eggs"+style.Reset)
package stream

import (
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/logging"
)

// MarkerPattern matches one SGR marker, optionally wrapped in the 0x01/0x02
// zero-width sentinels used by line editors.
var MarkerPattern = regexp.MustCompile("\x01?\x1b\\[([0-9;]*)m\x02?")

// Stream is an io.Writer that applies inline style markers.
type Stream struct {
	mu     *sync.Mutex
	out    io.Writer
	ctrl   control.Controller
	logger zerolog.Logger
}

// New wraps out. Markers are applied through ctrl.
func New(out io.Writer, ctrl control.Controller) *Stream {
	return newWithLock(out, ctrl, &sync.Mutex{})
}

// Pair wraps two sinks that share one terminal. Writes to either stream are
// serialized through a single lock.
func Pair(stdout, stderr io.Writer, ctrl control.Controller) (*Stream, *Stream) {
	mu := &sync.Mutex{}
	return newWithLock(stdout, ctrl, mu), newWithLock(stderr, ctrl, mu)
}

func newWithLock(out io.Writer, ctrl control.Controller, mu *sync.Mutex) *Stream {
	if ctrl == nil {
		ctrl = control.NewNullController()
	}
	return &Stream{
		mu:     mu,
		out:    out,
		ctrl:   ctrl,
		logger: logging.GetLogger("stream"),
	}
}

// Controller returns the controller markers are routed to.
func (s *Stream) Controller() control.Controller {
	return s.ctrl
}

// Write implements io.Writer. It reports len(p) once every chunk was handled.
func (s *Stream) Write(p []byte) (int, error) {
	if _, err := s.WriteString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString splits text into plain chunks and markers. Plain chunks are
// forwarded verbatim, markers are applied, and the sink is flushed after
// every chunk.
func (s *Stream) WriteString(text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := 0
	for _, m := range MarkerPattern.FindAllStringSubmatchIndex(text, -1) {
		if err := s.plain(text[pos:m[0]]); err != nil {
			return pos, err
		}
		if err := s.marker(text[m[2]:m[3]]); err != nil {
			return pos, err
		}
		pos = m[1]
	}
	if err := s.plain(text[pos:]); err != nil {
		return pos, err
	}
	return len(text), nil
}

func (s *Stream) plain(chunk string) error {
	if chunk == "" {
		return nil
	}
	if _, err := io.WriteString(s.out, chunk); err != nil {
		return err
	}
	return s.flush()
}

func (s *Stream) marker(params string) error {
	r := control.Decode(params)
	if r.IsEmpty() {
		if params != "" {
			s.logger.Trace().Str("params", params).Msg("Dropping marker without known codes")
		}
		return s.flush()
	}
	if err := s.ctrl.Apply(s.out, r); err != nil {
		return err
	}
	return s.flush()
}

// RawWrite forwards text without looking for markers.
func (s *Stream) RawWrite(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.out, text); err != nil {
		return err
	}
	return s.flush()
}

// WriteLines writes the lines joined by newlines.
func (s *Stream) WriteLines(lines []string) error {
	_, err := s.WriteString(strings.Join(lines, "\n"))
	return err
}

// Apply sends a request straight to the controller, outside of any text.
func (s *Stream) Apply(r control.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.Apply(s.out, r); err != nil {
		return err
	}
	return s.flush()
}

// Reset asks the controller to reset the terminal.
func (s *Stream) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Reset(s.out)
}

// Size reports the terminal size when the controller can tell.
func (s *Stream) Size() (int, int, error) {
	return s.ctrl.Size(s.out)
}

// Flush flushes the sink if it buffers.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *Stream) flush() error {
	if f, ok := s.out.(control.Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Fd returns the file descriptor of the sink, or ^uintptr(0) when the sink
// is not a file.
func (s *Stream) Fd() uintptr {
	if f, ok := s.out.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

// IsTerminal reports whether the sink is a terminal.
func (s *Stream) IsTerminal() bool {
	f, ok := s.out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
