package style

import (
	_ "embed"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
)

// StyleDef is a style definition as written in theme YAML.
type StyleDef struct {
	Attributes []string `yaml:"attributes,omitempty"`
	Fg         string   `yaml:"fg,omitempty"`
	Bg         string   `yaml:"bg,omitempty"`
}

// ThemeFile is the YAML layout of a theme.
type ThemeFile struct {
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps semantic role names to style requests.
type Theme struct {
	roles map[string]control.Request
}

//go:embed theme.yaml
var embeddedTheme []byte

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	t, err := ParseTheme(embeddedTheme)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTheme parses theme YAML.
func ParseTheme(data []byte) (*Theme, error) {
	var f ThemeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrTheme, "failed to parse theme")
	}
	t := &Theme{roles: make(map[string]control.Request, len(f.Styles))}
	for name, def := range f.Styles {
		r, err := control.Validate(def.Attributes, def.Fg, def.Bg)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTheme, "invalid style %q", name).WithDetail("style", name)
		}
		t.roles[name] = r
	}
	return t, nil
}

// LoadTheme reads a theme file and layers it over the built-in theme. A
// missing file yields the built-in theme.
func LoadTheme(path string) (*Theme, error) {
	base := DefaultTheme()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return nil, errors.Wrapf(err, errors.ErrTheme, "failed to read theme %s", path)
	}
	user, err := ParseTheme(data)
	if err != nil {
		return nil, err
	}
	for name, r := range user.roles {
		base.roles[name] = r
	}
	return base, nil
}

// Get returns the request for a role.
func (t *Theme) Get(name string) (control.Request, bool) {
	r, ok := t.roles[name]
	return r, ok
}

// Set adds or replaces a role.
func (t *Theme) Set(name string, r control.Request) {
	t.roles[name] = r
}

// Names returns the role names in sorted order.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.roles))
	for name := range t.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sprint wraps text in the role's style. Unknown roles leave text as is.
func (t *Theme) Sprint(name, text string) string {
	r, ok := t.roles[name]
	if !ok {
		return text
	}
	return Sprint(r, text)
}
