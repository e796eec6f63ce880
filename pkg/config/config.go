// Package config loads lazypony settings. Sources are layered, later ones
// winning: embedded defaults, the user config file, LAZYPONY_* environment
// variables, then command line overrides.
package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/logging"
	"github.com/arthur-debert/lazypony/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override
const EnvPrefix = "LAZYPONY_"

type Config struct {
	Output OutputConfig `koanf:"output"`
	Prompt PromptConfig `koanf:"prompt"`
	Theme  ThemeConfig  `koanf:"theme"`
	Setup  SetupConfig  `koanf:"setup"`
}

type OutputConfig struct {
	Color         string   `koanf:"color"`
	ANSITerminals []string `koanf:"ansi_terminals"`
}

type PromptConfig struct {
	IgnoreCase bool `koanf:"ignore_case"`
	Completion bool `koanf:"completion"`
}

type ThemeConfig struct {
	File string `koanf:"file"`
}

type SetupConfig struct {
	Directories []string `koanf:"directories"`
	Catalog     string   `koanf:"catalog"`
}

// Mode returns the parsed output.color value. Load has already validated it.
func (c *Config) Mode() control.Mode {
	m, _ := control.ParseMode(c.Output.Color)
	return m
}

// ThemePath returns the theme file to load
func (c *Config) ThemePath() string {
	if c.Theme.File != "" {
		return c.Theme.File
	}
	return paths.ThemeFilePath()
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load reads the configuration. An empty path means the file under the
// user config directory, which may be absent. An explicit path must exist.
// overrides use dotted keys such as "output.color".
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	explicit := path != ""
	if !explicit {
		path = paths.ConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
			WithDetail("path", path)
	}

	// 3. Environment, LAZYPONY_OUTPUT_ANSI_TERMINALS -> output.ansi_terminals
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func postProcess(cfg *Config) error {
	if _, err := control.ParseMode(cfg.Output.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid output.color").
			WithDetail("value", cfg.Output.Color)
	}
	cfg.Theme.File = paths.ExpandHome(cfg.Theme.File)
	cfg.Setup.Catalog = paths.ExpandHome(cfg.Setup.Catalog)
	for i, d := range cfg.Setup.Directories {
		cfg.Setup.Directories[i] = paths.ExpandHome(d)
	}
	return nil
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}
