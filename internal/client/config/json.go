package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edcasillas/globalstats/internal/flagx"
	"github.com/edcasillas/globalstats/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the runtime Config unchanged.
type JSONConfig struct {
	BaseURL         *string         `json:"base_url"`
	ClientID        *string         `json:"client_id"`
	ClientSecret    *string         `json:"client_secret"`
	DefaultUsername *string         `json:"default_username"`
	Verbose         *bool           `json:"verbose"`
	DatabasePath    *string         `json:"database_path"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	OTelEndpoint    *string         `json:"otel_endpoint"`
}

// parseJSON overlays cfg with the file named by -c or -config in args.
// Without either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.ClientID, jc.ClientID)
	setIf(&cfg.ClientSecret, jc.ClientSecret)
	setIf(&cfg.DefaultUsername, jc.DefaultUsername)
	setIf(&cfg.Verbose, jc.Verbose)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.OTelEndpoint, jc.OTelEndpoint)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
