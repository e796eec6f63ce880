package prompt

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/arthur-debert/lazypony/pkg/errors"
)

// LineReader reads one line of user input. It returns io.EOF once input is
// exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// Completer is implemented by readers that can offer tab completion.
type Completer interface {
	SetCompletions(words []string, ignoreCase bool)
}

// ScannerReader reads lines from any io.Reader.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader creates a line reader over r
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

func (s *ScannerReader) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

// TerminalReader reads lines from a terminal in raw mode, with line editing
// and tab completion.
type TerminalReader struct {
	fd        int
	in        io.Reader
	out       io.Writer
	completer *ListCompleter
}

// NewTerminalReader fails when in is not a terminal.
func NewTerminalReader(in *os.File, out io.Writer) (*TerminalReader, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New(errors.ErrNotSupported, "input is not a terminal")
	}
	return &TerminalReader{fd: fd, in: in, out: out}, nil
}

func (r *TerminalReader) SetCompletions(words []string, ignoreCase bool) {
	r.completer = NewListCompleter(words, ignoreCase)
}

func (r *TerminalReader) ReadLine() (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "failed to enter raw mode")
	}
	defer func() { _ = term.Restore(r.fd, state) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{r.in, r.out}, "")
	if r.completer != nil {
		t.AutoCompleteCallback = r.completer.Complete
	}
	return t.ReadLine()
}

// ListCompleter completes the typed prefix against a fixed word list.
type ListCompleter struct {
	words      []string
	ignoreCase bool
}

// NewListCompleter creates a completer over words
func NewListCompleter(words []string, ignoreCase bool) *ListCompleter {
	return &ListCompleter{words: append([]string(nil), words...), ignoreCase: ignoreCase}
}

// Matches returns the words starting with prefix.
func (c *ListCompleter) Matches(prefix string) []string {
	var out []string
	for _, w := range c.words {
		if c.hasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

func (c *ListCompleter) hasPrefix(word, prefix string) bool {
	if len(prefix) > len(word) {
		return false
	}
	if c.ignoreCase {
		return strings.EqualFold(word[:len(prefix)], prefix)
	}
	return strings.HasPrefix(word, prefix)
}

// Complete has the signature of term.Terminal.AutoCompleteCallback. On tab it
// extends the text before the cursor to the longest unambiguous match.
func (c *ListCompleter) Complete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}
	prefix := line[:pos]
	matches := c.Matches(prefix)
	if len(matches) == 0 {
		return "", 0, false
	}
	completed := matches[0]
	for _, m := range matches[1:] {
		completed = commonPrefix(completed, m, c.ignoreCase)
	}
	if len(completed) <= len(prefix) {
		return "", 0, false
	}
	return completed + line[pos:], len(completed), true
}

func commonPrefix(a, b string, ignoreCase bool) string {
	n := 0
	for n < len(a) && n < len(b) {
		if a[n] != b[n] && !(ignoreCase && strings.EqualFold(a[n:n+1], b[n:n+1])) {
			break
		}
		n++
	}
	return a[:n]
}
