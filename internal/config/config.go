// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionCookie = "cookie"
)

// Duration is a time.Duration read from strings like "10s" in both the JSON
// file and the environment.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("duration must be a string or integer: %s", b)
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.EnvDecode(s)
}

// EnvDecode implements envconfig.Decoder.
func (d *Duration) EnvDecode(val string) error {
	v, err := time.ParseDuration(val)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address" env:"SERVER_ADDRESS, overwrite"`

	// DatabaseDSN is a full connection string. When empty, the Postgres DSN
	// is assembled from the DB* parts.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN, overwrite"`
	DBDriver    string `json:"db_driver" env:"DB_DRIVER, overwrite"`
	DBHost      string `json:"db_host" env:"DB_HOST, overwrite"`
	DBPort      string `json:"db_port" env:"DB_PORT, overwrite"`
	DBUser      string `json:"db_user" env:"DB_USER, overwrite"`
	DBPassword  string `json:"db_password" env:"DB_PASSWORD, overwrite"`
	DBName      string `json:"db_name" env:"DB_NAME, overwrite"`
	DBSSLMode   string `json:"db_sslmode" env:"DB_SSLMODE, overwrite"`
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" env:"DB_PATH, overwrite"`

	WeatherKey     string   `json:"open_weather_key" env:"OPEN_WEATHER_KEY, overwrite"`
	WeatherBaseURL string   `json:"weather_base_url" env:"WEATHER_BASE_URL, overwrite"`
	WeatherTimeout Duration `json:"weather_timeout" env:"WEATHER_TIMEOUT, overwrite"`

	// SessionBackend is one of "memory", "redis" or "cookie".
	SessionBackend string   `json:"session_backend" env:"SESSION_BACKEND, overwrite"`
	SessionSecret  string   `json:"session_secret" env:"SESSION_SECRET, overwrite"`
	SessionTTL     Duration `json:"session_ttl" env:"SESSION_TTL, overwrite"`
	SessionCookie  string   `json:"session_cookie" env:"SESSION_COOKIE, overwrite"`
	SessionSecure  bool     `json:"session_secure" env:"SESSION_SECURE, overwrite"`
	RedisAddr      string   `json:"redis_addr" env:"REDIS_ADDR, overwrite"`
	RedisDB        int      `json:"redis_db" env:"REDIS_DB, overwrite"`

	// SiteURL and SiteTitle describe the site in the RSS feed.
	SiteURL   string `json:"site_url" env:"SITE_URL, overwrite"`
	SiteTitle string `json:"site_title" env:"SITE_TITLE, overwrite"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT, overwrite"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY, overwrite"`

	LogLevel string `json:"log_level" env:"LOG_LEVEL, overwrite"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG, overwrite"`
}

// options holds the current configuration values.
var options = Default()

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
}

// Default returns the built-in configuration.
func Default() *Options {
	return &Options{
		Port:           "localhost:8080",
		DBDriver:       DriverPostgres,
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "postgres",
		DBName:         "blog",
		DBSSLMode:      "disable",
		DBPath:         "data/blog.db",
		WeatherTimeout: Duration{10 * time.Second},
		SessionBackend: SessionMemory,
		SessionTTL:     Duration{24 * time.Hour},
		SessionCookie:  "postboard_session",
		RedisAddr:      "localhost:6379",
		SiteURL:        "http://localhost:8080",
		SiteTitle:      "Postboard",
		LogLevel:       "info",
	}
}

// Parse parses the command-line flags, then the JSON config file, then
// environment variables; later sources win.
func Parse() (*Options, error) {
	flag.Parse()
	if err := load(context.Background(), options, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	return options, nil
}

func load(ctx context.Context, opts *Options, lookuper envconfig.Lookuper) error {
	if v, ok := lookuper.Lookup("CONFIG"); ok && v != "" {
		opts.Config = v
	}

	if opts.Config != "" {
		if _, err := os.Stat(opts.Config); err == nil {
			data, err := os.ReadFile(opts.Config)
			if err != nil {
				return fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, opts); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   opts,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("error while reading environment: %w", err)
	}

	opts.LogLevel = strings.ToLower(opts.LogLevel)
	return opts.Validate()
}

// Validate reports inconsistent settings.
func (o *Options) Validate() error {
	var errs []error
	switch o.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown db driver %q", o.DBDriver))
	}
	switch o.SessionBackend {
	case SessionMemory, SessionRedis:
	case SessionCookie:
		if o.SessionSecret == "" {
			errs = append(errs, errors.New("cookie sessions need SESSION_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", o.SessionBackend))
	}
	if (o.TLSCert == "") != (o.TLSKey == "") {
		errs = append(errs, errors.New("TLS_CERT and TLS_KEY must be set together"))
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for the configured driver.
func (o *Options) DSN() string {
	if o.DBDriver == DriverSQLite {
		if o.DatabaseDSN != "" {
			return o.DatabaseDSN
		}
		return o.DBPath
	}
	return o.PostgresDSN()
}

// PostgresDSN returns DatabaseDSN, or a lib/pq URL built from the DB* parts.
func (o *Options) PostgresDSN() string {
	if o.DatabaseDSN != "" {
		return o.DatabaseDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(o.DBHost, o.DBPort),
		Path:     "/" + o.DBName,
		RawQuery: url.Values{"sslmode": {o.DBSSLMode}}.Encode(),
	}
	if o.DBPassword != "" {
		u.User = url.UserPassword(o.DBUser, o.DBPassword)
	} else {
		u.User = url.User(o.DBUser)
	}
	return u.String()
}

// TLS reports whether HTTPS is configured.
func (o *Options) TLS() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}
