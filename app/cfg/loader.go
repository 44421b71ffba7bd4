package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	// cmp.Or requires Go 1.22; inlined for the Go 1.21 toolchain
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Coda document configuration
	CodaAPIToken string `long:"coda-token" env:"CODA_API_TOKEN" description:"Coda API bearer token (required)" required:"true"`
	CodaDocID    string `long:"coda-doc-id" env:"CODA_DOC_ID" description:"Coda document ID (required)" required:"true"`
	CodaBaseURL  string `long:"coda-base-url" env:"CODA_BASE_URL" default:"https://coda.io/apis/v1" description:"Coda API base URL"`

	// Application configuration
	SchemaFile         string `long:"schema-file" env:"SCHEMA_FILE" description:"YAML file mapping logical fields to Coda column IDs (optional, built-in defaults used otherwise)"`
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl            string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://events.example.com)"`
	WorkerCount        int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	RefreshInterval    int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Event snapshot refresh interval in seconds"`
	GeocodeConcurrency int    `long:"geocode-concurrency" env:"GEOCODE_CONCURRENCY" default:"8" description:"Maximum number of concurrent geocoding lookups"`
	GoogleMapsAPIKey   string `long:"google-maps-key" env:"GOOGLE_MAPS_API_KEY" description:"Google Maps geocoding API key (geocoding disabled when empty)"`
	APIAccessKey       string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Event Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/London" description:"Timezone for date display (e.g., UTC, Europe/London)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		CodaAPIToken:       raw.CodaAPIToken,
		CodaDocID:          raw.CodaDocID,
		CodaBaseURL:        raw.CodaBaseURL,
		SchemaFile:         raw.SchemaFile,
		Port:               raw.Port,
		BaseUrl:            raw.BaseUrl,
		WorkerCount:        raw.WorkerCount,
		RefreshInterval:    raw.RefreshInterval,
		GeocodeConcurrency: raw.GeocodeConcurrency,
		GoogleMapsAPIKey:   raw.GoogleMapsAPIKey,
		APIAccessKey:       raw.APIAccessKey,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
