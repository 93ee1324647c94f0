package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/vdom"
	"github.com/canonui/canon/pkg/window"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "canon.yaml"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "canon"

	// DefaultMetricsAddr is where `canon serve` listens.
	DefaultMetricsAddr = "localhost:9464"

	// DefaultDebounce is the quiet period before a watched file is reloaded.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultTelemetryLimit bounds the attach history.
	DefaultTelemetryLimit = 1000
)

// Environment variables that override the file.
const (
	EnvLogLevel    = "CANON_LOG_LEVEL"
	EnvMetricsAddr = "CANON_METRICS_ADDR"
)

// Config represents the complete canon.yaml configuration.
type Config struct {
	// Root is the selector of the container the scanner observes.
	// Empty means the document body.
	Root string `yaml:"root,omitempty"`

	// MarkerPrefix names the attachment markers, "data-canon-attached-" by default.
	MarkerPrefix string `yaml:"marker_prefix,omitempty"`

	// Window is the default virtual list geometry.
	Window window.Config `yaml:"window"`

	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Watch     WatchConfig     `yaml:"watch"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus middleware and endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Addr      string `yaml:"addr"`
}

// TelemetryConfig configures the attach history.
type TelemetryConfig struct {
	Limit int `yaml:"limit"`
}

// WatchConfig configures `canon watch`.
type WatchConfig struct {
	// Debounce is the quiet period after a write before reloading.
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		MarkerPrefix: behavior.DefaultMarkerPrefix,
		Window:       window.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
			Addr:      DefaultMetricsAddr,
		},
		Telemetry: TelemetryConfig{Limit: DefaultTelemetryLimit},
		Watch:     WatchConfig{Debounce: DefaultDebounce},
	}
}

// LoadFromDir reads canon.yaml from dir.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, ConfigFileName))
}

// Load reads configuration from the specified file path. Fields missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Run 'canon init' to write a default configuration")
		}
		return nil, errors.New(errors.CodeConfigNotFound).Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that the file is valid YAML")
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.MarkerPrefix == "" {
		c.MarkerPrefix = behavior.DefaultMarkerPrefix
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}

// ApplyEnv overrides fields from the environment through lookup, normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvMetricsAddr); ok && v != "" {
		c.Metrics.Addr = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Root != "" {
		if _, err := vdom.ParseSelector(c.Root); err != nil {
			return errors.InvalidConfig("root: %v", err)
		}
	}
	if !strings.HasPrefix(c.MarkerPrefix, "data-") {
		return errors.InvalidConfig("marker_prefix %q must start with data-", c.MarkerPrefix)
	}
	if err := c.Window.Validate(); err != nil {
		return errors.InvalidConfig("window: %v", err)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.InvalidConfig("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.InvalidConfig("log.format %q must be text or json", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.InvalidConfig("metrics.namespace is required when metrics are enabled")
	}
	if c.Telemetry.Limit < 0 {
		return errors.InvalidConfig("telemetry.limit must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return errors.InvalidConfig("watch.debounce must not be negative")
	}
	return nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// SlogLevel returns the configured level, info when unrecognised.
func (c LogConfig) SlogLevel() slog.Level {
	l, _ := parseLevel(c.Level)
	return l
}

// NewLogger builds the logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the directory holding canon.yaml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'canon init' to write a default configuration")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest canon.yaml above the working
// directory, falling back to the defaults when there is none. Environment
// overrides are applied either way.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if root, err := FindProjectRoot(wd); err == nil {
		if cfg, err = LoadFromDir(root); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}
