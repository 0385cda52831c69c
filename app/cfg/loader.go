package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input and output
	FeedsDir  string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed definition files"`
	OutputDir string `long:"output-dir" env:"OUTPUT_DIR" default:"./public" description:"Directory the rendered feeds are written to"`

	// Rendering
	Extensions       []string `long:"extension" env:"EXTENSIONS" env-delim:"," description:"Extension registered on every feed (repeatable, e.g. FullText)"`
	IgnoreExceptions bool     `long:"ignore-exceptions" env:"IGNORE_EXCEPTIONS" description:"Collect missing required fields instead of failing the feed"`
	Generator        string   `long:"generator" env:"GENERATOR" description:"Generator name for feeds that do not set one (default: rss-turbo/<version>)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for item dates (e.g., UTC, Europe/Moscow)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses the command line and environment. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsDir:         raw.FeedsDir,
		OutputDir:        raw.OutputDir,
		Extensions:       normalizeExtensions(raw.Extensions),
		IgnoreExceptions: raw.IgnoreExceptions,
		Generator:        cmp.Or(raw.Generator, "rss-turbo/"+GetVersion()),
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
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

// normalizeExtensions trims names and drops empty and repeated ones
func normalizeExtensions(names []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			slog.Debug("Timezone configured", "timezone", timezone)
		}
	}
	return nil
}
