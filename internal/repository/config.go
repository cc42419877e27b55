// Package repository locates the settings repository through its
// configuration file and provides the bundled default settings.
package repository

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/netsettings/internal/groups"
)

var (
	// ErrConfigNotFound is returned when the repository configuration file
	// is missing and the environment does not name a settings repository.
	ErrConfigNotFound = errors.New("repository configuration not found")

	// ErrInvalidConfig is returned when the configuration cannot be parsed
	// or lacks required keys.
	ErrInvalidConfig = errors.New("invalid repository configuration")
)

const (
	// DefaultConfigPath is read when no other path is given.
	DefaultConfigPath = "/etc/netsettings/repository.yml"

	// EnvPrefix prefixes environment overrides, e.g.
	// NETSETTINGS_SETTINGS_LOCAL.
	EnvPrefix = "NETSETTINGS_"

	// ConfigPathEnv overrides DefaultConfigPath.
	ConfigPathEnv = EnvPrefix + "REPOSITORY_CONFIG"
)

// Config is the repository configuration file.
type Config struct {
	// SettingsLocal is the checkout of the settings repository.
	SettingsLocal string `koanf:"settings_local"`

	// SettingsRemote is the upstream of SettingsLocal. Informational.
	SettingsRemote string `koanf:"settings_remote"`

	// TemplatesLocal is the checkout of the templates repository.
	// Informational.
	TemplatesLocal string `koanf:"templates_local"`

	// TemplatesRemote is the upstream of TemplatesLocal. Informational.
	TemplatesRemote string `koanf:"templates_remote"`

	// DefaultSettings replaces the bundled default settings when set.
	DefaultSettings string `koanf:"default_settings"`

	// FilterDepth bounds group filtering recursion.
	FilterDepth int `koanf:"filter_depth"`
}

// Loader reads the repository configuration.
// Precedence order (highest to lowest):
// 1. Environment Variables (NETSETTINGS_*)
// 2. Configuration file (YAML, or TOML by extension)
// 3. Defaults
type Loader struct {
	path    string
	environ func() []string
}

// NewLoader returns a loader for the configuration file at path. An empty
// path falls back to ConfigPathEnv and then DefaultConfigPath.
func NewLoader(path string) *Loader {
	return &Loader{path: path, environ: os.Environ}
}

// WithEnviron replaces the environment source.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	l.environ = environ

	return l
}

// Path returns the configuration file the loader reads.
func (l *Loader) Path() string {
	if l.path != "" {
		return l.path
	}

	if p := l.lookupEnv(ConfigPathEnv); p != "" {
		return p
	}

	return DefaultConfigPath
}

// Load reads defaults, the configuration file and the environment.
func (l *Loader) Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	path := l.Path()

	fileFound, err := l.loadFile(k, path)
	if err != nil {
		return nil, err
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
		EnvironFunc:   l.environ,
	}

	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
	}

	if cfg.SettingsLocal == "" {
		if !fileFound {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", path)
		}

		return nil, errors.Wrapf(ErrInvalidConfig, "%s: settings_local is required", path)
	}

	if cfg.FilterDepth < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: filter_depth must be positive", path)
	}

	return &cfg, nil
}

func (*Loader) loadFile(k *koanf.Koanf, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, errors.Wrapf(err, "reading %s", path)
	}

	if info.IsDir() {
		return false, errors.Wrapf(ErrInvalidConfig, "%s is a directory", path)
	}

	var parser koanf.Parser = yamlparser.Parser()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parser = tomlparser.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return true, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
	}

	return true, nil
}

func (l *Loader) lookupEnv(key string) string {
	for _, kv := range l.environ() {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v
		}
	}

	return ""
}

// envTransform maps NETSETTINGS_SETTINGS_LOCAL to settings_local. The
// configuration path variable is not a configuration key.
func envTransform(key, value string) (string, any) {
	if key == ConfigPathEnv {
		return "", nil
	}

	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
}

func defaultsToMap() map[string]any {
	return map[string]any{
		"filter_depth": groups.DefaultFilterDepth,
	}
}
