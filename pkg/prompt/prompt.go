// Package prompt asks the user questions on a styled stream.
package prompt

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/logging"
	"github.com/arthur-debert/lazypony/pkg/stream"
	"github.com/arthur-debert/lazypony/pkg/style"
)

var errorPrefix = style.MustColor([]string{"bright"}, "red", "") + "Error: " + style.Reset

// ErrorMessage formats msg the way prompts report bad input: a bright red
// prefix, the message, and a terminal bell.
func ErrorMessage(msg string) string {
	return errorPrefix + msg + "\a\n"
}

// Prompter writes questions to a stream and reads the answers.
type Prompter struct {
	out    *stream.Stream
	in     LineReader
	logger zerolog.Logger
}

// New creates a prompter
func New(out *stream.Stream, in LineReader) *Prompter {
	return &Prompter{
		out:    out,
		in:     in,
		logger: logging.GetLogger("prompt"),
	}
}

// Error writes an error message to the output stream.
func (p *Prompter) Error(msg string) error {
	_, err := p.out.WriteString(ErrorMessage(msg))
	return err
}

// readLine returns io.EOF unwrapped so callers can fall back to defaults.
func (p *Prompter) readLine(text string) (string, error) {
	if _, err := p.out.WriteString(text); err != nil {
		return "", err
	}
	line, err := p.in.ReadLine()
	if err != nil && !stderrors.Is(err, io.EOF) {
		return "", errors.Wrap(err, errors.ErrIO, "failed to read user input")
	}
	return line, err
}

// Answer is one group of acceptable responses. The first value is the one
// Query returns.
type Answer struct {
	Values []string
	Fg     control.Color
	Bg     control.Color
	// Desc is shown in list mode.
	Desc string
}

// Choice builds an uncoloured answer.
func Choice(values ...string) Answer {
	return Answer{Values: values}
}

// QueryOptions tune Query. The zero value matches case-insensitively and
// has no default.
type QueryOptions struct {
	Default       string
	List          bool
	CaseSensitive bool
}

// Query presents the answers and asks until one matches. Empty input or end
// of input returns opts.Default. Unmatched input is reported and asked again,
// as often as it takes.
func (p *Prompter) Query(text string, answers []Answer, opts QueryOptions) (string, error) {
	if len(answers) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "query needs at least one answer")
	}
	var words []string
	for i, a := range answers {
		if len(a.Values) == 0 {
			return "", errors.Newf(errors.ErrInvalidInput, "answer %d has no values", i)
		}
		words = append(words, a.Values...)
	}
	if c, ok := p.in.(Completer); ok {
		c.SetCompletions(words, !opts.CaseSensitive)
	}

	question := text + layout(answers, opts.List) + ": "
	for {
		line, err := p.readLine(question)
		if stderrors.Is(err, io.EOF) {
			return opts.Default, nil
		}
		if err != nil {
			return "", err
		}

		response := strings.TrimSpace(line)
		if response == "" {
			return opts.Default, nil
		}
		for _, a := range answers {
			for _, v := range a.Values {
				if response == v || (!opts.CaseSensitive && strings.EqualFold(response, v)) {
					p.logger.Debug().Str("response", response).Str("answer", a.Values[0]).Msg("Query answered")
					return a.Values[0], nil
				}
			}
		}
		if err := p.Error(fmt.Sprintf("Response '%s' not understood, please try again.", line)); err != nil {
			return "", err
		}
	}
}

func layout(answers []Answer, list bool) string {
	items := make([]string, len(answers))
	for i, a := range answers {
		r := control.NewRequest(a.Fg, a.Bg, control.Bright)
		items[i] = style.Encode(r) + a.Values[0] + style.Reset
		if list {
			items[i] += " : " + a.Desc
		}
	}
	if list {
		return "\n" + strings.Join(items, "\n") + "\n"
	}
	return "[" + strings.Join(items, "/") + "]"
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(text string, def bool) (bool, error) {
	d := "no"
	if def {
		d = "yes"
	}
	answer, err := p.Query(text, []Answer{
		{Values: []string{"yes", "y"}, Fg: control.Green},
		{Values: []string{"no", "n"}, Fg: control.Red},
	}, QueryOptions{Default: d})
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}
