// Package config handles loading and parsing application configuration.
// It supports these sources (later ones win):
//  1. A .env file in the working directory (optional)
//  2. A YAML file named by the --config flag or CONFIG_PATH
//  3. Environment variables (env:"..." tags), applied on top of the file,
//     or on their own when no file is named
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported database drivers. The names are the database/sql driver
// names registered by github.com/mattn/go-sqlite3 and
// github.com/jackc/pgx/v5/stdlib.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Database Database `yaml:"database"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`
}

// Database holds the connection settings. Path is used by the sqlite3
// driver; host, port, name, and credentials by pgx.
type Database struct {
	Driver   string `yaml:"driver"   env:"DB_DRIVER"   env-default:"sqlite3"`
	Path     string `yaml:"path"     env:"DB_PATH"     env-default:"storage/school.db"`
	Host     string `yaml:"host"     env:"DB_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"DB_PORT"     env-default:"5432"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-default:"school"`
	User     string `yaml:"user"     env:"DB_USER"     env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`

	// QueryTimeout bounds every statement so a stuck database cannot hang
	// a request forever.
	QueryTimeout time.Duration `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT" env-default:"5s"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Load reads the configuration. An empty path means environment only.
//
// A .env file in the working directory is loaded first if present;
// variables already set in the process environment are not overridden.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, so the user
		// gets a clear message rather than a cryptic open error.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on failure.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

// Validate checks the settings the driver in use depends on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("config: database.path is required for sqlite3")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.Host) == "" {
			return errors.New("config: database.host is required for pgx")
		}
		if strings.TrimSpace(c.Database.Name) == "" {
			return errors.New("config: database.name is required for pgx")
		}
	default:
		return fmt.Errorf("config: unsupported database driver %q (want %s or %s)",
			c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.QueryTimeout < 0 {
		return errors.New("config: database.query_timeout must not be negative")
	}
	return nil
}

// DSN builds the data source name for the configured driver.
//
// For pgx the password is URL-escaped so characters like '@' or ':'
// cannot break the URL, and host:port is joined with net.JoinHostPort so
// IPv6 hosts get their brackets.
func (d Database) DSN() string {
	if d.Driver == DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:     "/" + d.Name,
			RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
		}
		return u.String()
	}
	// Foreign keys are off: the course → student reference is left to
	// whatever the operator declares.
	return d.Path + "?_busy_timeout=5000"
}
