package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Digest configuration
	ConfigFile string `long:"config" env:"DIGEST_CONFIG" default:"./digest.yml" description:"Digest definition file (YAML)"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./digest.db" description:"SQLite database holding seen items and archived digests"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"." description:"Directory the HTML newsletter is written to"`
	Days       int    `long:"days" env:"DAYS" default:"31" description:"Number of days of catalog acquisitions to include"`

	// Fetching
	Timeout           int    `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Timeout per source fetch in seconds"`
	UserAgent         string `long:"user-agent" env:"USER_AGENT" default:"Digest/1.0" description:"User agent string for HTTP requests"`
	SkipFailedSources bool   `long:"skip-failed-sources" env:"SKIP_FAILED_SOURCES" description:"Log and skip sources that cannot be fetched instead of aborting the run"`

	// Serving
	Serve bool   `long:"serve" env:"SERVE" description:"Serve archived digests over HTTP instead of running once"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Oslo)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses args instead of the process arguments when args is not nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", raw.Days)
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}

	cfg := &Cfg{
		ConfigFile:        raw.ConfigFile,
		DBPath:            raw.DBPath,
		OutputDir:         raw.OutputDir,
		Days:              raw.Days,
		Timeout:           time.Duration(raw.Timeout) * time.Second,
		UserAgent:         raw.UserAgent,
		SkipFailedSources: raw.SkipFailedSources,
		Serve:             raw.Serve,
		Port:              raw.Port,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
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
