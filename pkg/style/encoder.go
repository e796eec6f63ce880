// Package style builds the marker strings written through a stream.Stream.
package style

import (
	"github.com/arthur-debert/lazypony/pkg/control"
)

// Reset returns the display to the default attributes.
var Reset = control.Encode(control.NewRequest(control.NoColor, control.NoColor, control.Default))

// Color returns the marker for the named attributes and colours.
//
//	Color([]string{"bright", "underline"}, "blue", "white")
//
// gives a bright blue foreground on white with underline. Empty fg or bg
// leaves that colour unchanged.
//
// Avoid black and white: terminals disagree on which one is the default
// background. Use reverse and default instead.
func Color(attrs []string, fg, bg string) (string, error) {
	r, err := control.Validate(attrs, fg, bg)
	if err != nil {
		return "", err
	}
	return control.Encode(r), nil
}

// MustColor is like Color but panics on invalid names. Meant for constant
// styles known at compile time.
func MustColor(attrs []string, fg, bg string) string {
	s, err := Color(attrs, fg, bg)
	if err != nil {
		panic(err)
	}
	return s
}

// Encode returns the marker for an already validated request.
func Encode(r control.Request) string {
	return control.Encode(r)
}

// ZeroWidth wraps a marker in the sentinels line editors use to skip it when
// measuring the prompt.
func ZeroWidth(marker string) string {
	return "\x01" + marker + "\x02"
}

// Sprint wraps text in the request and a trailing reset.
func Sprint(r control.Request, text string) string {
	if r.IsEmpty() {
		return text
	}
	return control.Encode(r) + text + Reset
}
