package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/integrations"
	"github.com/matzehuels/factoriogen/pkg/integrations/modportal"
	"github.com/matzehuels/factoriogen/pkg/validate"
)

// configFileName is looked up in the working directory first.
const configFileName = appName + ".toml"

// duration decodes TOML strings such as "10s" or "1m30s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds settings shared by all commands. Command-line flags take
// precedence over values read from a file.
type Config struct {
	RegistryURL          string   `toml:"registry_url"`
	RequestTimeout       duration `toml:"request_timeout"`
	ValidationTimeout    duration `toml:"validation_timeout"`
	Parallel             bool     `toml:"parallel"`
	ValidateDependencies bool     `toml:"validate_dependencies"`
	Strict               bool     `toml:"strict"`
	BuiltinMods          []string `toml:"builtin_mods"`

	// path is the file the config was read from, empty for defaults.
	path string
}

// defaultConfig returns the settings used when no file is present.
func defaultConfig() Config {
	return Config{
		RegistryURL:          modportal.DefaultBaseURL,
		RequestTimeout:       duration{integrations.DefaultTimeout},
		ValidationTimeout:    duration{validate.DefaultBatchTimeout},
		Parallel:             true,
		ValidateDependencies: true,
	}
}

// loadConfig reads the config file at path. An empty path searches the
// working directory and then the user config directory; if neither has a
// file, defaults are returned. An explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return defaultConfig(), ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return defaultConfig(), ferrors.New(ferrors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.path = path

	if err := cfg.validate(); err != nil {
		return defaultConfig(), err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := ferrors.ValidateURL(c.RegistryURL); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "registry_url")
	}
	if c.RequestTimeout.Duration <= 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "request_timeout must be positive")
	}
	if c.ValidationTimeout.Duration <= 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "validation_timeout must be positive")
	}
	for _, name := range c.BuiltinMods {
		if err := ferrors.ValidateModName(name); err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "builtin_mods")
		}
	}
	return nil
}

// findConfig returns the first existing config file, or "".
func findConfig() string {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// configDir returns the config directory using XDG standard (~/.config/factoriogen/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
