package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/vtree/internal/errors"
)

const (
	// JSONFileName and TOMLFileName are the names searched for, in order.
	JSONFileName = "vtree.json"
	TOMLFileName = "vtree.toml"

	// DefaultScanRatio is the share of old children scanned past the
	// cursor before a placement falls back to insertBefore.
	DefaultScanRatio = 0.5

	// DefaultAddr is the default server address.
	DefaultAddr = ":7331"

	// DefaultMaxMessageSize bounds a single WebSocket message.
	DefaultMaxMessageSize = 1 << 20

	// DefaultNamespace is used for metrics and as the tracer name.
	DefaultNamespace = "vtree"
)

// Config represents the complete vtree configuration.
type Config struct {
	// ScanRatio tunes how far placement looks ahead, in (0, 1].
	ScanRatio float64 `json:"scanRatio,omitempty" toml:"scanRatio,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" toml:"logLevel,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`

	// Server contains playground server configuration.
	Server ServerConfig `json:"server" toml:"server"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing" toml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Enabled exposes /metrics on the server. Defaults to true.
	Enabled *bool `json:"enabled,omitempty" toml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`
}

// ServerConfig contains playground server configuration.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" toml:"addr,omitempty"`

	// MaxMessageSize bounds request bodies and WebSocket messages, in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty" toml:"maxMessageSize,omitempty"`

	// WriteTimeout bounds a single WebSocket write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" toml:"writeTimeout,omitempty"`
}

// TracingConfig contains OpenTelemetry configuration.
type TracingConfig struct {
	// TracerName names the tracer used for pass spans.
	TracerName string `json:"tracerName,omitempty" toml:"tracerName,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads vtree.json or vtree.toml from dir.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E300").
		WithDetail("No " + JSONFileName + " or " + TOMLFileName + " found in " + dir).
		WithSuggestion("Run without --config to use defaults, or create " + JSONFileName)
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension.
func LoadFile(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".toml" {
		return nil, errors.New("E301").WithDetailf("%s has extension %q", path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}

	cfg := &Config{}
	if ext == ".json" {
		err = decodeJSON(data, cfg)
	} else {
		err = decodeTOML(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E300").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file against the documented keys")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeJSON(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf(errors.CategoryConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// SaveTo writes the configuration to path, as JSON or TOML by extension.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New("E300").Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New("E300").Wrap(err)
		}
	default:
		return errors.New("E301").WithDetailf("%s", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New("E300").Wrap(err)
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
	if c.ScanRatio == 0 {
		c.ScanRatio = DefaultScanRatio
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ScanRatio <= 0 || c.ScanRatio > 1 {
		return errors.New("E300").
			WithDetailf("scanRatio must be in (0, 1], got %v", c.ScanRatio)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Server.MaxMessageSize < 0 {
		return errors.New("E300").
			WithDetailf("server.maxMessageSize must not be negative, got %d", c.Server.MaxMessageSize)
	}
	if d, err := time.ParseDuration(c.Server.WriteTimeout); err != nil || d <= 0 {
		return errors.New("E300").
			WithDetailf("server.writeTimeout %q is not a positive duration", c.Server.WriteTimeout)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.New("E300").
			WithDetailf("logLevel %q", c.LogLevel).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// MetricsEnabled reports whether /metrics is exposed.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// WriteTimeout returns Server.WriteTimeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, TOMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file.
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
			return "", errors.New("E300").
				WithDetail("No config file found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the working directory or its
// nearest parent that has one. Without any config file it returns defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
