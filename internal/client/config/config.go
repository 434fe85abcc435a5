package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the globalstats client.
//
// Fields:
//   - BaseURL: root of the globalstats REST API.
//   - ClientID, ClientSecret: API credentials for the client-credentials grant.
//   - DefaultUsername: display name used when creating a record without one.
//   - Verbose: log request and response detail.
//   - DatabasePath: SQLite file holding the remembered statistic id.
//   - RequestTimeout: per-request HTTP timeout.
//   - OTelEndpoint: OTLP/HTTP trace endpoint; tracing is off when empty.
type Config struct {
	BaseURL         string        `env:"GLOBALSTATS_BASE_URL"`
	ClientID        string        `env:"GLOBALSTATS_CLIENT_ID"`
	ClientSecret    string        `env:"GLOBALSTATS_CLIENT_SECRET"`
	DefaultUsername string        `env:"GLOBALSTATS_DEFAULT_USERNAME"`
	Verbose         bool          `env:"GLOBALSTATS_VERBOSE"`
	DatabasePath    string        `env:"GLOBALSTATS_DB_PATH"`
	RequestTimeout  time.Duration `env:"GLOBALSTATS_REQUEST_TIMEOUT"`
	OTelEndpoint    string        `env:"GLOBALSTATS_OTEL_ENDPOINT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://api.globalstats.io"
	c.DefaultUsername = "anonymous"
	c.DatabasePath = "globalstats.db"
	c.RequestTimeout = 30 * time.Second
}

// Validate reports settings the client cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
		errs = append(errs, fmt.Errorf("base url %q must be absolute", c.BaseURL))
	}
	if c.ClientID == "" {
		errs = append(errs, errors.New("client id is required"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("client secret is required"))
	}
	if c.DefaultUsername == "" {
		errs = append(errs, errors.New("default username is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
