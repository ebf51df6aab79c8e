// Package config loads novix settings from an XDG config file, NOVIX_*
// environment variables and command-line flags, and persists the settings
// the palette changes at runtime.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/renato0307/novix/internal/keyboard"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/ui"
)

const (
	// AppName names the XDG directories and the env prefix.
	AppName   = "novix"
	envPrefix = "NOVIX"

	configFileName = "config.yaml"
	recentFileName = "recent.yaml"
	historyName    = "repl_history"
	logFileName    = "novix.log"
)

// Setting keys, in viper's dotted notation.
const (
	KeyTheme       = "theme"
	KeyMode        = "mode"
	KeyDensity     = "density"
	KeyAutoApply   = "auto_apply_patch"
	KeyProject     = "project"
	KeyRecentLimit = "recent_limit"
	KeyToggle      = "keys.toggle"
	KeyLogFile     = "log.file"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
)

// Densities accepted by the density setting.
var densities = []string{"comfortable", "compact"}

// Config is the resolved configuration.
type Config struct {
	Theme          string     `mapstructure:"theme" yaml:"theme"`
	Mode           string     `mapstructure:"mode" yaml:"mode"`
	Density        string     `mapstructure:"density" yaml:"density"`
	AutoApplyPatch bool       `mapstructure:"auto_apply_patch" yaml:"auto_apply_patch"`
	Project        string     `mapstructure:"project" yaml:"project,omitempty"`
	RecentLimit    int        `mapstructure:"recent_limit" yaml:"recent_limit"`
	Keys           KeysConfig `mapstructure:"keys" yaml:"keys"`
	Log            LogConfig  `mapstructure:"log" yaml:"log"`
}

// KeysConfig overrides the default shortcuts. Empty fields keep the default.
type KeysConfig struct {
	Toggle    string `mapstructure:"toggle" yaml:"toggle,omitempty"`
	Close     string `mapstructure:"close" yaml:"close,omitempty"`
	Up        string `mapstructure:"up" yaml:"up,omitempty"`
	Down      string `mapstructure:"down" yaml:"down,omitempty"`
	Execute   string `mapstructure:"execute" yaml:"execute,omitempty"`
	FocusNext string `mapstructure:"focus_next" yaml:"focus_next,omitempty"`
	FocusPrev string `mapstructure:"focus_prev" yaml:"focus_prev,omitempty"`
	Quit      string `mapstructure:"quit" yaml:"quit,omitempty"`
}

// LogConfig configures the log file.
type LogConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// KeyMap returns the default shortcuts with the configured overrides
// applied.
func (c *Config) KeyMap() *keyboard.Keys {
	k := keyboard.Default()
	override := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	override(&k.Toggle, c.Keys.Toggle)
	override(&k.Close, c.Keys.Close)
	override(&k.Up, c.Keys.Up)
	override(&k.Down, c.Keys.Down)
	override(&k.Execute, c.Keys.Execute)
	override(&k.FocusNext, c.Keys.FocusNext)
	override(&k.FocusPrev, c.Keys.FocusPrev)
	override(&k.Quit, c.Keys.Quit)
	return k
}

// Logging converts the log section for logging.Init.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		FilePath:   c.Log.File,
		Level:      logging.ParseLevel(c.Log.Level),
		Format:     logging.ParseFormat(c.Log.Format),
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(ui.AvailableThemes(), c.Theme) {
		return fmt.Errorf("invalid theme %q (available: %s)", c.Theme, strings.Join(ui.AvailableThemes(), ", "))
	}
	switch ui.Mode(c.Mode) {
	case ui.ModeSystem, ui.ModeLight, ui.ModeDark:
	default:
		return fmt.Errorf("invalid mode %q (available: system, light, dark)", c.Mode)
	}
	if !slices.Contains(densities, c.Density) {
		return fmt.Errorf("invalid density %q (available: %s)", c.Density, strings.Join(densities, ", "))
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be >= 1, got %d", c.RecentLimit)
	}
	return nil
}

// Loader reads and writes the configuration files.
type Loader struct {
	v          *viper.Viper
	configPath string
	stateDir   string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStateDir replaces the XDG state directory the recent list lives in.
func WithStateDir(dir string) LoaderOption {
	return func(l *Loader) { l.stateDir = dir }
}

// NewLoader creates a loader for the config file at path. An empty path
// selects $XDG_CONFIG_HOME/novix/config.yaml.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	if path == "" {
		path = DefaultConfigPath()
	}
	l := &Loader{
		v:          viper.New(),
		configPath: path,
		stateDir:   filepath.Join(xdg.StateHome, AppName),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix(envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
	l.setDefaults()
	return l
}

func (l *Loader) setDefaults() {
	l.v.SetDefault(KeyTheme, "charm")
	l.v.SetDefault(KeyMode, string(ui.ModeSystem))
	l.v.SetDefault(KeyDensity, densities[0])
	l.v.SetDefault(KeyAutoApply, false)
	l.v.SetDefault(KeyProject, "")
	l.v.SetDefault(KeyRecentLimit, 20)
	l.v.SetDefault(KeyToggle, keyboard.Default().Toggle)
	l.v.SetDefault(KeyLogFile, "")
	l.v.SetDefault(KeyLogLevel, "info")
	l.v.SetDefault(KeyLogFormat, string(logging.FormatText))
	l.v.SetDefault("log.max_size_mb", 10)
	l.v.SetDefault("log.max_backups", 3)
}

// Viper exposes the underlying viper instance so callers can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// ConfigPath returns the config file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// RecentPath returns the file the recent list is persisted in.
func (l *Loader) RecentPath() string {
	return filepath.Join(l.stateDir, recentFileName)
}

// HistoryPath returns the file the REPL keeps its line history in.
func (l *Loader) HistoryPath() string {
	return filepath.Join(l.stateDir, historyName)
}

// Load resolves the configuration. A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", l.configPath, err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Set changes one setting and writes it to the config file. Only the
// changed key is added to the file; everything else in it is kept. A value
// that would leave the configuration invalid is rejected and nothing is
// written.
func (l *Loader) Set(key string, value any) error {
	doc := map[string]any{}
	data, err := os.ReadFile(l.configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", l.configPath, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read config %s: %w", l.configPath, err)
	}

	if err := l.check(doc, key, value); err != nil {
		return err
	}
	setPath(doc, strings.Split(key, "."), value)
	if err := writeYAML(l.configPath, doc); err != nil {
		return err
	}
	l.v.Set(key, value)
	return nil
}

// check validates the configuration as it would be with the file
// contents doc and key set to value.
func (l *Loader) check(doc map[string]any, key string, value any) error {
	probe := viper.New()
	for _, settings := range []map[string]any{l.v.AllSettings(), doc} {
		if err := probe.MergeConfigMap(settings); err != nil {
			return fmt.Errorf("failed to merge settings: %w", err)
		}
	}
	probe.Set(key, value)

	var cfg Config
	if err := probe.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return cfg.Validate()
}

// setPath stores value under the dotted path, creating nested maps.
func setPath(doc map[string]any, path []string, value any) {
	for _, k := range path[:len(path)-1] {
		next, ok := doc[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			doc[k] = next
		}
		doc = next
	}
	doc[path[len(path)-1]] = value
}

func writeYAML(path string, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/novix/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, configFileName)
}

// DefaultLogPath returns the log file used when --log-file is given
// without a path.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, logFileName)
}
