// Package catalog lists the packages the setup dialog offers and builds the
// plan of actions it prints. Nothing here installs or resolves anything.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
)

//go:embed catalog.toml
var builtin []byte

// Package is one catalog entry.
type Package struct {
	Name         string   `toml:"name" yaml:"name"`
	Description  string   `toml:"description" yaml:"description,omitempty"`
	Required     bool     `toml:"required" yaml:"required,omitempty"`
	Color        string   `toml:"color" yaml:"-"`
	Dependencies []string `toml:"dependencies" yaml:"dependencies,omitempty"`
}

// Fg returns the colour used when offering the package.
func (p Package) Fg() control.Color {
	c, err := control.ParseColor(p.Color)
	if err != nil {
		return control.NoColor
	}
	return c
}

type Catalog struct {
	Packages []Package `toml:"package"`
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog and checks names are present and unique.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalog, "failed to parse catalog")
	}
	seen := make(map[string]bool, len(c.Packages))
	for i, p := range c.Packages {
		name := CleanName(p.Name)
		if name == "" {
			return nil, errors.Newf(errors.ErrCatalog, "package %d has no name", i)
		}
		if seen[name] {
			return nil, errors.Newf(errors.ErrCatalog, "package %s listed twice", name)
		}
		if _, err := control.ParseColor(p.Color); err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalog, "package %s", name)
		}
		seen[name] = true
		c.Packages[i].Name = name
	}
	return &c, nil
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalog, "failed to read catalog %s", path).
			WithDetail("path", path)
	}
	return Parse(data)
}

// Read parses a catalog from r, typically a file the user picked.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalog, "failed to read catalog")
	}
	return Parse(data)
}

// Lookup finds a package by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Package, bool) {
	name = CleanName(name)
	for _, p := range c.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// Names returns package names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		names[i] = p.Name
	}
	return names
}

// Optional returns the packages the user gets asked about.
func (c *Catalog) Optional() []Package {
	var out []Package
	for _, p := range c.Packages {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}

// CleanName normalises a package name as typed by a user
func CleanName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseList splits a space or comma separated package list.
func ParseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if n := CleanName(f); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Plan is what setup would do.
type Plan struct {
	OutputDir    string              `yaml:"output_dir"`
	Directories  []string            `yaml:"directories"`
	Packages     []Package           `yaml:"packages"`
	Dependencies map[string][]string `yaml:"dependencies,omitempty"`
}

// NewPlan builds the plan for selected packages. Required packages come
// first. Unknown names are an error.
func (c *Catalog) NewPlan(outputDir string, dirs, selected []string) (*Plan, error) {
	plan := &Plan{OutputDir: outputDir}
	for _, d := range dirs {
		plan.Directories = append(plan.Directories, filepath.Join(outputDir, filepath.FromSlash(d)))
	}

	picked := make(map[string]bool)
	add := func(p Package) {
		if picked[p.Name] {
			return
		}
		picked[p.Name] = true
		plan.Packages = append(plan.Packages, p)
		if len(p.Dependencies) > 0 {
			if plan.Dependencies == nil {
				plan.Dependencies = make(map[string][]string)
			}
			plan.Dependencies[p.Name] = p.Dependencies
		}
	}

	for _, p := range c.Packages {
		if p.Required {
			add(p)
		}
	}
	for _, name := range selected {
		p, ok := c.Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrCatalog, "couldn't find package %q", CleanName(name)).
				WithDetail("available", c.Names())
		}
		add(p)
	}
	return plan, nil
}

// Text renders the plan for humans.
func (p *Plan) Text() []string {
	lines := []string{fmt.Sprintf("Project directory: %s", p.OutputDir), "Directories to create:"}
	for _, d := range p.Directories {
		lines = append(lines, "  "+d)
	}
	lines = append(lines, "Packages to install:")
	for _, pkg := range p.Packages {
		line := "  " + pkg.Name
		if deps := p.Dependencies[pkg.Name]; len(deps) > 0 {
			line += " (needs " + strings.Join(deps, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
