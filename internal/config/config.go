// Package config loads startup configuration from flags and an optional
// YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds process startup settings.
type Config struct {
	Driver   string `yaml:"driver"`
	DBPath   string `yaml:"db_path"`
	DSN      string `yaml:"dsn"`
	LogMode  string `yaml:"log_mode"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Driver:   DriverSQLite,
		DBPath:   "bmi_records.db",
		LogMode:  "dev",
		LogLevel: "warn",
	}
}

// Load parses global flags from args. Values from the file named by
// -config are applied first; flags set explicitly win. The remaining
// non-flag arguments are returned.
func Load(args []string) (Config, []string, error) {
	fs := flag.NewFlagSet("bmi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	def := Default()
	path := fs.String("config", "", "path to a YAML config file")
	driver := fs.String("driver", def.Driver, "storage driver: sqlite, postgres or memory")
	dbPath := fs.String("db", def.DBPath, "sqlite database file")
	dsn := fs.String("dsn", "", "postgres connection string")
	logMode := fs.String("log-mode", def.LogMode, "log format: dev or prod")
	logLevel := fs.String("log-level", def.LogLevel, "minimum log level")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, fmt.Errorf("config: %w", err)
	}

	cfg := def
	if *path != "" {
		fileCfg, err := ReadFile(*path)
		if err != nil {
			return Config{}, nil, err
		}
		cfg = merge(cfg, fileCfg)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = *driver
		case "db":
			cfg.DBPath = *dbPath
		case "dsn":
			cfg.DSN = *dsn
		case "log-mode":
			cfg.LogMode = *logMode
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// ReadFile decodes a YAML config file. Unknown keys are rejected.
func ReadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the driver is known and has what it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: sqlite driver requires a database path")
		}
	case DriverPostgres:
		if c.DSN == "" {
			return errors.New("config: postgres driver requires a dsn")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	return nil
}

func merge(base, over Config) Config {
	if over.Driver != "" {
		base.Driver = over.Driver
	}
	if over.DBPath != "" {
		base.DBPath = over.DBPath
	}
	if over.DSN != "" {
		base.DSN = over.DSN
	}
	if over.LogMode != "" {
		base.LogMode = over.LogMode
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	return base
}
