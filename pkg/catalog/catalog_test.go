package catalog

import (
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	assert.Equal(t, []string{"django", "django-compress"}, c.Names())

	opt := c.Optional()
	require.Len(t, opt, 1)
	assert.Equal(t, "django-compress", opt[0].Name)
	assert.Equal(t, control.Cyan, opt[0].Fg())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"names are cleaned", "[[package]]\nname = \" Flask \"\n", false},
		{"missing name", "[[package]]\ndescription = \"x\"\n", true},
		{"duplicate", "[[package]]\nname = \"a\"\n[[package]]\nname = \"A\"\n", true},
		{"bad colour", "[[package]]\nname = \"a\"\ncolor = \"mauve\"\n", true},
		{"bad toml", "[[package]\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrCatalog))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"flask"}, c.Names())
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Packages, 2)

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[package]]\nname = \"south\"\nrequired = true\n"), 0644))
	c, err = Load(path)
	require.NoError(t, err)
	p, ok := c.Lookup("SOUTH")
	require.True(t, ok)
	assert.True(t, p.Required)

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalog))
}

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("[[package]]\nname = \"south\"\ncolor = \"yellow\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"south"}, c.Names())

	_, err = Read(strings.NewReader("[[package]\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalog))
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"django-compress", "south"}, ParseList(" Django-Compress,south  "))
	assert.Empty(t, ParseList(""))
}

func TestNewPlan(t *testing.T) {
	c := Builtin()

	plan, err := c.NewPlan("site", []string{"apps", "3rdparty/libs"}, []string{"django-compress", "django"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("site", "apps"), filepath.Join("site", "3rdparty", "libs")}, plan.Directories)
	require.Len(t, plan.Packages, 2)
	assert.Equal(t, "django", plan.Packages[0].Name, "required packages first, once")
	assert.Equal(t, map[string][]string{"django-compress": {"django"}}, plan.Dependencies)
	assert.Contains(t, plan.Text(), "  django-compress (needs django)")

	_, err = c.NewPlan("site", nil, []string{"rails"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalog))
}
