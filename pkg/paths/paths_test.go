package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/config")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, "/custom/config", ConfigDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, filepath.Join("/xdg/config", AppDirName), ConfigDir())
		assert.Equal(t, filepath.Join("/xdg/config", AppDirName, ConfigFileName), ConfigFilePath())
		assert.Equal(t, filepath.Join("/xdg/config", AppDirName, ThemeFileName), ThemeFilePath())
	})
}

func TestStateDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv(EnvStateDir, "/custom/state")
		assert.Equal(t, "/custom/state", StateDir())
		assert.Equal(t, filepath.Join("/custom/state", LogFileName), LogFilePath())
	})

	t.Run("xdg state home", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")
		assert.Equal(t, filepath.Join("/xdg/state", AppDirName), StateDir())
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "/etc/hosts", "/etc/hosts"},
		{"tilde alone", "~", home},
		{"tilde slash", "~/notes.txt", filepath.Join(home, "notes.txt")},
		{"other user untouched", "~bob/x", "~bob/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
