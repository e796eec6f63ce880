package prompt

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/lazypony/pkg/paths"
)

// CastError carries a message meant for the user rather than the parser's
// own wording.
type CastError struct {
	Input   string
	Message string
}

func (e *CastError) Error() string { return e.Message }

// Int parses an integer.
func Int(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &CastError{Input: s, Message: fmt.Sprintf("The input ('%s') must be an integer (-1, 0, 1, 2, etc.)", s)}
	}
	return v, nil
}

// Float parses a number.
func Float(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &CastError{Input: s, Message: fmt.Sprintf("The input ('%s') must be a number", s)}
	}
	return v, nil
}

func castMessage(err error) string {
	var ce *CastError
	if stderrors.As(err, &ce) {
		return ce.Message
	}
	return fmt.Sprintf("Bad input (%s)", err)
}

// InputObject asks for a value and converts it with cast. Conversion failures
// are reported and asked again. Empty input or end of input returns def.
func InputObject[T any](p *Prompter, text string, cast func(string) (T, error), def T) (T, error) {
	for {
		line, err := p.readLine(text)
		if stderrors.Is(err, io.EOF) {
			return def, nil
		}
		if err != nil {
			return def, err
		}
		if line == "" {
			return def, nil
		}
		v, err := cast(line)
		if err != nil {
			p.logger.Debug().Err(err).Str("input", line).Msg("Input rejected")
			if werr := p.Error(castMessage(err)); werr != nil {
				return def, werr
			}
			continue
		}
		return v, nil
	}
}

// DefaultFilePrompt is used when FileChooser gets an empty prompt.
const DefaultFilePrompt = "Enter File: "

// FileChooser asks for a path until it can be opened with flag and perm.
// Empty input or end of input returns nil.
func (p *Prompter) FileChooser(text string, flag int, perm os.FileMode) (*os.File, error) {
	if text == "" {
		text = DefaultFilePrompt
	}
	for {
		line, err := p.readLine(text)
		if stderrors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			return nil, nil
		}
		name = paths.ExpandHome(name)
		f, err := os.OpenFile(name, flag, perm)
		if err != nil {
			if werr := p.Error(fmt.Sprintf("unable to open %s : %v", name, err)); werr != nil {
				return nil, werr
			}
			continue
		}
		return f, nil
	}
}
