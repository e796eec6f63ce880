// Package control translates abstract style requests into terminal effects.
//
// A Request names display attributes (bright, dim, underline...) and optional
// foreground/background colours. A Controller turns it into something the
// terminal understands: an ANSI X3.64 escape sequence, a mutation of the
// native console attribute word, or nothing at all when no terminal
// capability was detected.
package control

import (
	"strings"

	"github.com/arthur-debert/lazypony/pkg/errors"
)

// Attribute is a display attribute.
type Attribute int

const (
	Default Attribute = iota
	Bright
	Dim
	Underline
	Blink
	Reverse
	Hidden
)

var attributeNames = [...]string{"default", "bright", "dim", "underline", "blink", "reverse", "hidden"}

// SGR parameter for each attribute, indexed by Attribute.
var attributeCodes = [...]int{0, 1, 2, 4, 5, 7, 8}

// Attributes lists every display attribute in table order.
func Attributes() []Attribute {
	return []Attribute{Default, Bright, Dim, Underline, Blink, Reverse, Hidden}
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// Code returns the SGR parameter for the attribute.
func (a Attribute) Code() int {
	return attributeCodes[a]
}

// ParseAttribute looks up an attribute by name.
func ParseAttribute(name string) (Attribute, error) {
	for i, n := range attributeNames {
		if n == name {
			return Attribute(i), nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidStyle, "'%s' not a valid display value", name).
		WithDetail("attribute", name)
}

// Color is one of the eight basic terminal colours. The zero value means no
// colour was requested.
//
// Order matters: SGR codes and native console bits are derived from the
// position of the colour in the table.
type Color int

const (
	NoColor Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Colors lists the colours in table order.
func Colors() []Color {
	return []Color{Black, Red, Green, Yellow, Blue, Magenta, Cyan, White}
}

// Index returns the table position of the colour, or -1 for NoColor.
func (c Color) Index() int {
	if c <= NoColor || int(c) > len(colorNames) {
		return -1
	}
	return int(c) - 1
}

func (c Color) String() string {
	if i := c.Index(); i >= 0 {
		return colorNames[i]
	}
	return "none"
}

// FgCode returns the SGR foreground parameter (30-37).
func (c Color) FgCode() int { return 30 + c.Index() }

// BgCode returns the SGR background parameter (40-47).
func (c Color) BgCode() int { return 40 + c.Index() }

// ParseColor looks up a colour by name. The empty string yields NoColor.
func ParseColor(name string) (Color, error) {
	if name == "" {
		return NoColor, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i + 1), nil
		}
	}
	return NoColor, errors.Newf(errors.ErrInvalidStyle, "'%s' not a valid color", name).
		WithDetail("color", name)
}

func colorAt(index int) Color {
	return Color(index + 1)
}

// joinNames renders attribute names for logging and String.
func joinNames(attrs []Attribute) string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}
