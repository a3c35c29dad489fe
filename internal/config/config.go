// Package config loads pathschema settings with viper: defaults, then an
// optional config file, then PATHSCHEMA_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pathschema/internal/errors"
	"pathschema/internal/logger"
)

// EnvPrefix is prepended to environment overrides: PATHSCHEMA_SCHEMA_DIR
// sets schema.dir.
const EnvPrefix = "PATHSCHEMA"

// Config is the full configuration.
type Config struct {
	Schema   SchemaConfig   `mapstructure:"schema"`
	Resolve  ResolveConfig  `mapstructure:"resolve"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
}

// SchemaConfig says where schema documents live.
type SchemaConfig struct {
	// Dir holds "<name>.schema" (or .yaml, .toml, .json) files.
	Dir string `mapstructure:"dir"`
	// Table is read when a database is configured.
	Table string `mapstructure:"table"`
}

// ResolveConfig tunes path resolution.
type ResolveConfig struct {
	MaxDepth       int  `mapstructure:"max_depth"`
	WarnCollisions bool `mapstructure:"warn_collisions"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// DatabaseConfig points at an optional SQL schema source.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Enabled reports whether a database source is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// SetDefaults registers the default value of every key. Keys without a
// default are invisible to environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema.dir", "schemas")
	v.SetDefault("schema.table", "path_schemas")

	v.SetDefault("resolve.max_depth", 32)
	v.SetDefault("resolve.warn_collisions", true)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "")
}

// New returns a viper instance with defaults and environment binding but no
// config file.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// FlagBindings maps config keys to the command-line flags that override
// them. Only flags the user actually set take effect.
var FlagBindings = map[string]string{
	"schema.dir":        "schema-dir",
	"schema.table":      "table",
	"database.dsn":      "db",
	"log.json":          "json-log",
	"log.level":         "log-level",
	"resolve.max_depth": "max-depth",
}

// Load reads configuration. With an empty path it looks for pathschema.toml
// (or .yaml, .json) in the working directory and then in
// $HOME/.config/pathschema; finding none is not an error.
func Load(path string) (*Config, error) {
	return load(New(), path)
}

// LoadFlags is Load with flags from fs layered on top. Flags named in
// FlagBindings but missing from fs are skipped.
func LoadFlags(path string, fs *pflag.FlagSet) (*Config, error) {
	v := New()

	for key, name := range FlagBindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(err, "binding flag --%s", name)
		}
	}

	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pathschema")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pathschema"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper decodes and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if c.Resolve.MaxDepth <= 0 {
		return errors.Newf("resolve.max_depth must be positive, got %d", c.Resolve.MaxDepth)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}

	if c.Database.Enabled() && c.Database.Driver == "" {
		return errors.New("database.driver is required when database.dsn is set")
	}

	if c.Schema.Dir == "" && !c.Database.Enabled() {
		return errors.WithHint(
			errors.New("no schema source configured"),
			"set schema.dir or database.dsn")
	}

	return nil
}

// LoggerOptions converts the log section for logger.New.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{JSON: c.Log.JSON, Level: c.Log.Level}
}
