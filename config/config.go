// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
	OpenAPI   OpenAPIConfig   `yaml:"openapi" toml:"openapi"`
	Hydration HydrationConfig `yaml:"hydration" toml:"hydration"`

	// Debug turns on verbose error bodies and debug console logging.
	Debug bool `yaml:"debug" toml:"debug"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string   `yaml:"host" toml:"host"`
	Port         int      `yaml:"port" toml:"port" validate:"min=1,max=65535"`
	BasePath     string   `yaml:"base_path" toml:"base_path" validate:"startswith=/"`
	ReadTimeout  Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout" toml:"write_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Format string `yaml:"format" toml:"format" validate:"oneof=json console"`              // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path" toml:"path"`       // Custom path (default: /metrics)
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// HydrationConfig configures the CSV dataset loaded at startup.
type HydrationConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled"`                        // default true
	Source  string `yaml:"source" toml:"source" validate:"oneof=file s3"` // "file" or "s3"
	Dir     string `yaml:"dir" toml:"dir"`

	// Strict makes a duplicate name in the CSV input fatal instead of skipped.
	Strict bool `yaml:"strict" toml:"strict"`
	// Optional tolerates missing CSV files.
	Optional bool `yaml:"optional" toml:"optional"`

	Modules       []ModuleFileConfig `yaml:"modules" toml:"modules" validate:"dive"`
	ResourcesFile string             `yaml:"resources_file" toml:"resources_file"`

	S3 S3Config `yaml:"s3" toml:"s3"`
}

// ModuleFileConfig pairs a module CSV with the printer that crafts its rows.
type ModuleFileConfig struct {
	File    string `yaml:"file" toml:"file" validate:"required"`
	Printer string `yaml:"printer" toml:"printer" validate:"required"`
}

// S3Config locates hydration files in an S3-compatible bucket.
type S3Config struct {
	Bucket    string `yaml:"bucket" toml:"bucket"`
	Region    string `yaml:"region" toml:"region"`
	Endpoint  string `yaml:"endpoint" toml:"endpoint"` // optional, for MinIO
	Prefix    string `yaml:"prefix" toml:"prefix"`
	PathStyle bool   `yaml:"path_style" toml:"path_style"`

	// Static credentials; the default AWS chain is used when empty.
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key"`
}

// IsEnabled reports whether hydration runs at startup.
func (h HydrationConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DefaultModuleFiles are the printer CSVs shipped with the dataset.
func DefaultModuleFiles() []ModuleFileConfig {
	return []ModuleFileConfig{
		{File: "printing0.csv", Printer: "Backpack Printer"},
		{File: "printing1.csv", Printer: "Small Printer"},
		{File: "printing2.csv", Printer: "Medium Printer"},
		{File: "printing3.csv", Printer: "Large Printer"},
	}
}

// Load reads configuration from a YAML or TOML file (by extension).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(&cfg)
}

// Default returns the configuration used when no file is present,
// with environment overrides applied.
func Default() (*Config, error) {
	cfg := Config{
		Metrics: MetricsConfig{Enabled: true},
		OpenAPI: OpenAPIConfig{Enabled: true},
	}
	return finish(&cfg)
}

// LoadWithFallback loads from file when it exists, otherwise falls back to
// defaults plus ASTRO_* environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// applyEnvOverrides applies ASTRO_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("ASTRO_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("ASTRO_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ASTRO_BASE_PATH"); v != "" {
		cfg.Server.BasePath = v
	}
	if v := os.Getenv("ASTRO_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("ASTRO_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}

	// Logging configuration
	if v := os.Getenv("ASTRO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ASTRO_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("ASTRO_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("ASTRO_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}
	if v := os.Getenv("ASTRO_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}

	// Hydration configuration
	if v := os.Getenv("ASTRO_HYDRATION_ENABLED"); v != "" {
		enabled := parseBool(v)
		cfg.Hydration.Enabled = &enabled
	}
	if v := os.Getenv("ASTRO_HYDRATION_SOURCE"); v != "" {
		cfg.Hydration.Source = v
	}
	if v := os.Getenv("ASTRO_HYDRATION_DIR"); v != "" {
		cfg.Hydration.Dir = v
	}
	if v := os.Getenv("ASTRO_HYDRATION_STRICT"); v != "" {
		cfg.Hydration.Strict = parseBool(v)
	}
	if v := os.Getenv("ASTRO_S3_BUCKET"); v != "" {
		cfg.Hydration.S3.Bucket = v
	}
	if v := os.Getenv("ASTRO_S3_REGION"); v != "" {
		cfg.Hydration.S3.Region = v
	}
	if v := os.Getenv("ASTRO_S3_ENDPOINT"); v != "" {
		cfg.Hydration.S3.Endpoint = v
	}
	if v := os.Getenv("ASTRO_S3_PREFIX"); v != "" {
		cfg.Hydration.S3.Prefix = v
	}
	if v := os.Getenv("ASTRO_S3_PATH_STYLE"); v != "" {
		cfg.Hydration.S3.PathStyle = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/astro/v1"
	}
	cfg.Server.BasePath = "/" + strings.Trim(cfg.Server.BasePath, "/")
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(15 * time.Second)
	}

	// Debug mode implies verbose console logging unless set explicitly.
	if cfg.Debug {
		if cfg.Logging.Level == "" {
			cfg.Logging.Level = "debug"
		}
		if cfg.Logging.Format == "" {
			cfg.Logging.Format = "console"
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Hydration.Source == "" {
		cfg.Hydration.Source = "file"
	}
	if cfg.Hydration.Dir == "" {
		cfg.Hydration.Dir = "data"
	}
	if len(cfg.Hydration.Modules) == 0 {
		cfg.Hydration.Modules = DefaultModuleFiles()
	}
	if cfg.Hydration.ResourcesFile == "" {
		cfg.Hydration.ResourcesFile = "resources.csv"
	}
	if cfg.Hydration.S3.Region == "" {
		cfg.Hydration.S3.Region = "us-east-1"
	}
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their yaml name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%s: failed %q check (got %v)", fieldPath(e.Namespace()), e.Tag(), e.Value())
		}
		return err
	}

	if cfg.IsHydrationFromS3() && cfg.Hydration.S3.Bucket == "" {
		return fmt.Errorf("hydration.s3.bucket is required when hydration.source is 's3'")
	}

	seen := make(map[string]bool)
	for i, m := range cfg.Hydration.Modules {
		if seen[m.File] {
			return fmt.Errorf("hydration.modules[%d].file %q listed twice", i, m.File)
		}
		seen[m.File] = true
	}

	return nil
}

// IsHydrationFromS3 reports whether hydration files come from a bucket.
func (c *Config) IsHydrationFromS3() bool {
	return c.Hydration.Source == "s3"
}

// fieldPath turns "Config.server.port" into "server.port".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
