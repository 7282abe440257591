// Package config loads the HCL configuration used by the steamid command.
//
// Example file:
//
//	log_level  = "debug"
//	log_format = "text"
//
//	store {
//	  driver = "redis"
//	  addr   = "localhost:6379"
//	  prefix = "steamid:"
//	}
//
// Every attribute is optional; Default supplies the missing values.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/sxyafiq/steamid/store"
)

// Store drivers.
const (
	DriverSQLite = store.DriverSQLite
	DriverRedis  = store.DriverRedis
)

// Defaults applied to absent attributes.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDriver    = DriverSQLite
	DefaultDSN       = "players.db"
	DefaultAddr      = "localhost:6379"
	DefaultPrefix    = "steamid:"
)

// ErrInvalidConfig is returned when Config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string

	Store Store
}

// Store selects and configures the player index backend.
type Store struct {
	// Driver is "sqlite" or "redis".
	Driver string `hcl:"driver,optional"`

	// DSN is the SQLite data source name (file path or ":memory:").
	DSN string `hcl:"dsn,optional"`

	// Addr, Password and DB configure the Redis client.
	Addr     string `hcl:"addr,optional"`
	Password string `hcl:"password,optional"`
	DB       int    `hcl:"db,optional"`

	// Prefix namespaces every Redis key.
	Prefix string `hcl:"prefix,optional"`
}

// Options converts the block into the arguments of store.Open.
func (s Store) Options() store.Options {
	return store.Options{
		Driver:   s.Driver,
		DSN:      s.DSN,
		Addr:     s.Addr,
		Password: s.Password,
		DB:       s.DB,
		Prefix:   s.Prefix,
	}
}

// file is the decoded form of Config; the store block may be omitted.
type file struct {
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
	Store     *Store `hcl:"store,block"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Store: Store{
			Driver: DefaultDriver,
			DSN:    DefaultDSN,
			Addr:   DefaultAddr,
			Prefix: DefaultPrefix,
		},
	}
}

// Load reads, decodes and validates the file at path.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Decode(path, src)
}

// Decode parses src as HCL. filename is only used in diagnostics.
func Decode(filename string, src []byte) (Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var parsed file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if parsed.LogLevel != "" {
		cfg.LogLevel = parsed.LogLevel
	}
	if parsed.LogFormat != "" {
		cfg.LogFormat = parsed.LogFormat
	}
	if parsed.Store != nil {
		cfg.Store.merge(*parsed.Store)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *Store) merge(o Store) {
	if o.Driver != "" {
		s.Driver = o.Driver
	}
	if o.DSN != "" {
		s.DSN = o.DSN
	}
	if o.Addr != "" {
		s.Addr = o.Addr
	}
	if o.Password != "" {
		s.Password = o.Password
	}
	if o.DB != 0 {
		s.DB = o.DB
	}
	if o.Prefix != "" {
		s.Prefix = o.Prefix
	}
}

// Validate checks every field and returns a *ConfigError for the first
// invalid one.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return newConfigError("log_level", c.LogLevel, "unknown level",
			"must be one of debug, info, warn, error")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return newConfigError("log_format", c.LogFormat, "unknown format",
			"must be text or json")
	}

	return c.Store.Validate()
}

// Validate checks the store block.
func (s *Store) Validate() error {
	switch s.Driver {
	case DriverSQLite:
		if s.DSN == "" {
			return newConfigError("store.dsn", s.DSN, "empty", "required for the sqlite driver")
		}
	case DriverRedis:
		if s.Addr == "" {
			return newConfigError("store.addr", s.Addr, "empty", "required for the redis driver")
		}
		if s.DB < 0 {
			return newConfigError("store.db", fmt.Sprintf("%d", s.DB), "negative",
				"must be >= 0")
		}
	default:
		return newConfigError("store.driver", s.Driver, "unknown driver",
			"must be sqlite or redis")
	}
	return nil
}

// ConfigError represents a configuration validation error.
//
// Example usage:
//
//	cfg, err := config.Load(path)
//	var configErr *config.ConfigError
//	if errors.As(err, &configErr) {
//	    logger.Error("invalid configuration",
//	        "field", configErr.Field,
//	        "value", configErr.Value,
//	        "reason", configErr.Reason)
//	}
type ConfigError struct {
	// Field is the attribute that failed validation.
	Field string

	// Value is the invalid value (as string for logging).
	Value string

	// Reason is a human-readable explanation of why the value is invalid.
	Reason string

	// Constraint describes the valid range or constraint.
	Constraint string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%q (%s) - %s",
		e.Field, e.Value, e.Reason, e.Constraint)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// IsConfigError checks if an error is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

func newConfigError(field, value, reason, constraint string) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Reason:     reason,
		Constraint: constraint,
	}
}
