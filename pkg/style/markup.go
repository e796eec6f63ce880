package style

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/lazypony/pkg/control"
)

var tagPattern = regexp.MustCompile(`\[(/)?([a-z][a-z0-9_ -]*)?\]`)

// MarkupParser turns tagged text into text with markers.
//
// A tag is a theme role or a list of words naming attributes, a foreground
// colour, and an "on-" prefixed background colour:
//
//	[error]failed[/error] to open [bright yellow on-blue]config[/]
//
// Closing a tag restores whatever styles enclose it. Tags that do not parse
// are left in the text as is.
type MarkupParser struct {
	theme *Theme
}

// NewMarkupParser creates a parser using the given theme
func NewMarkupParser(theme *Theme) *MarkupParser {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &MarkupParser{theme: theme}
}

// Render processes markup text and returns text with markers
func (p *MarkupParser) Render(text string) string {
	var b strings.Builder
	var stack []control.Request

	pos := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		closing := m[2] >= 0
		name := ""
		if m[4] >= 0 {
			name = text[m[4]:m[5]]
		}

		b.WriteString(text[pos:m[0]])
		pos = m[1]

		if closing {
			if len(stack) == 0 {
				b.WriteString(text[m[0]:m[1]])
				continue
			}
			stack = stack[:len(stack)-1]
			b.WriteString(Reset)
			for _, r := range stack {
				b.WriteString(control.Encode(r))
			}
			continue
		}

		r, ok := p.lookup(name)
		if !ok {
			b.WriteString(text[m[0]:m[1]])
			continue
		}
		stack = append(stack, r)
		b.WriteString(control.Encode(r))
	}
	b.WriteString(text[pos:])
	if len(stack) > 0 {
		b.WriteString(Reset)
	}
	return b.String()
}

func (p *MarkupParser) lookup(tag string) (control.Request, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return control.Request{}, false
	}
	if r, ok := p.theme.Get(tag); ok {
		return r, true
	}

	var attrs []control.Attribute
	fg, bg := control.NoColor, control.NoColor
	for _, word := range strings.Fields(tag) {
		if a, err := control.ParseAttribute(word); err == nil {
			attrs = append(attrs, a)
			continue
		}
		if c, err := control.ParseColor(strings.TrimPrefix(word, "on-")); err == nil && c != control.NoColor {
			if strings.HasPrefix(word, "on-") {
				bg = c
			} else {
				fg = c
			}
			continue
		}
		return control.Request{}, false
	}
	return control.NewRequest(fg, bg, attrs...), true
}

// Strip removes every recognised tag, leaving plain text.
func (p *MarkupParser) Strip(text string) string {
	return tagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		m := tagPattern.FindStringSubmatch(tag)
		if m[1] == "/" {
			return ""
		}
		if _, ok := p.lookup(m[2]); ok {
			return ""
		}
		return tag
	})
}

var defaultParser = NewMarkupParser(nil)

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}
