package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/paths"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, control.ModeAuto, cfg.Mode())
	assert.Equal(t, control.DefaultANSITerminals, cfg.Output.ANSITerminals)
	assert.True(t, cfg.Prompt.IgnoreCase)
	assert.True(t, cfg.Prompt.Completion)
	assert.Equal(t, []string{"apps", "media", "3rdparty/apps", "3rdparty/libs", "3rdparty/packages"}, cfg.Setup.Directories)
	assert.Empty(t, cfg.Setup.Catalog)
	assert.Equal(t, filepath.Join(home, paths.ThemeFileName), cfg.ThemePath())
}

func TestLoadUserFile(t *testing.T) {
	dir := isolate(t)
	err := os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(`
[output]
color = "none"
ansi_terminals = ["screen"]

[theme]
file = "~/mine.yaml"
`), 0644)
	require.NoError(t, err)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, control.ModeNone, cfg.Mode())
	assert.Equal(t, []string{"screen"}, cfg.Output.ANSITerminals, "arrays replace defaults")
	assert.Equal(t, filepath.Join(dir, "mine.yaml"), cfg.ThemePath())
	assert.True(t, cfg.Prompt.IgnoreCase, "untouched keys keep defaults")
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ncolor = \"ansi\"\n[prompt]\nignore_case = true\n"), 0644))

	t.Setenv("LAZYPONY_OUTPUT_COLOR", "native")
	t.Setenv("LAZYPONY_OUTPUT_ANSI_TERMINALS", "xterm,screen")
	t.Setenv("LAZYPONY_PROMPT_IGNORE_CASE", "false")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, control.ModeNative, cfg.Mode(), "env beats file")
	assert.Equal(t, []string{"xterm", "screen"}, cfg.Output.ANSITerminals)
	assert.False(t, cfg.Prompt.IgnoreCase)

	cfg, err = Load(path, map[string]interface{}{"output.color": "none"})
	require.NoError(t, err)
	assert.Equal(t, control.ModeNone, cfg.Mode(), "overrides beat env")
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "absent.toml"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[output\ncolor="), 0644))
	_, err = Load(broken, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = Load("", map[string]interface{}{"output.color": "sepia"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Contains(t, DefaultContent(), "[output]")
}
