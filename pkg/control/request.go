package control

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Escape = "\x1b"
	CSI    = Escape + "["

	// ResetCode resets the whole terminal, not just display attributes.
	ResetCode = Escape + "c"
)

// Request is a validated style change. It is immutable; accessors return
// copies.
type Request struct {
	attrs []Attribute
	fg    Color
	bg    Color
}

// NewRequest builds a request from already typed values.
func NewRequest(fg, bg Color, attrs ...Attribute) Request {
	r := Request{fg: fg, bg: bg}
	if len(attrs) > 0 {
		r.attrs = append([]Attribute(nil), attrs...)
	}
	return r
}

// Validate checks attribute and colour names and builds a Request. Empty fg
// or bg means the colour is left out.
func Validate(attrs []string, fg, bg string) (Request, error) {
	var r Request
	for _, name := range attrs {
		a, err := ParseAttribute(name)
		if err != nil {
			return Request{}, err
		}
		r.attrs = append(r.attrs, a)
	}
	var err error
	if r.fg, err = ParseColor(fg); err != nil {
		return Request{}, err
	}
	if r.bg, err = ParseColor(bg); err != nil {
		return Request{}, err
	}
	return r, nil
}

// Attributes returns the requested attributes in order.
func (r Request) Attributes() []Attribute {
	if len(r.attrs) == 0 {
		return nil
	}
	return append([]Attribute(nil), r.attrs...)
}

func (r Request) Foreground() Color { return r.fg }
func (r Request) Background() Color { return r.bg }

// IsEmpty reports whether the request changes nothing.
func (r Request) IsEmpty() bool {
	return len(r.attrs) == 0 && r.fg == NoColor && r.bg == NoColor
}

// Codes returns the SGR parameters: attributes in order, then foreground,
// then background.
func (r Request) Codes() []int {
	codes := make([]int, 0, len(r.attrs)+2)
	for _, a := range r.attrs {
		codes = append(codes, a.Code())
	}
	if r.fg != NoColor {
		codes = append(codes, r.fg.FgCode())
	}
	if r.bg != NoColor {
		codes = append(codes, r.bg.BgCode())
	}
	return codes
}

func (r Request) String() string {
	var parts []string
	if len(r.attrs) > 0 {
		parts = append(parts, joinNames(r.attrs))
	}
	if r.fg != NoColor {
		parts = append(parts, "fg="+r.fg.String())
	}
	if r.bg != NoColor {
		parts = append(parts, "bg="+r.bg.String())
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

// Encode renders the request as an ANSI escape sequence, e.g. ESC[1;4;33;41m.
func Encode(r Request) string {
	codes := r.Codes()
	params := make([]string, len(codes))
	for i, c := range codes {
		params[i] = strconv.Itoa(c)
	}
	return CSI + strings.Join(params, ";") + "m"
}

// Decode turns the parameter list of an SGR sequence back into a Request.
// Codes are classified by value. Unknown or empty parameters are dropped and
// the last foreground/background wins.
func Decode(params string) Request {
	var r Request
	if params == "" {
		return r
	}
	for _, p := range strings.Split(params, ";") {
		code, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		switch {
		case code >= 30 && code <= 37:
			r.fg = colorAt(code - 30)
		case code >= 40 && code <= 47:
			r.bg = colorAt(code - 40)
		default:
			if a, ok := attributeForCode(code); ok {
				r.attrs = append(r.attrs, a)
			}
		}
	}
	return r
}

func attributeForCode(code int) (Attribute, bool) {
	for i, c := range attributeCodes {
		if c == code {
			return Attribute(i), true
		}
	}
	return 0, false
}

// GoString keeps test failure output readable.
func (r Request) GoString() string {
	return fmt.Sprintf("control.Request{%s}", r.String())
}
