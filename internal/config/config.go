// Package config loads foldctl configuration from defaults, an optional
// YAML file and MINFOLD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lguimbarda/min-fold/fold/numeric"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore: MINFOLD_SOURCE__PAGE_SIZE=50 overrides source.page_size.
const EnvPrefix = "MINFOLD_"

// Config is the top-level foldctl configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Source SourceConfig `koanf:"source"`
	Fold   FoldConfig   `koanf:"fold"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn or error
	Format string `koanf:"format"` // text or json
}

// SourceConfig selects where elements come from. Which fields apply
// depends on Kind.
type SourceConfig struct {
	Kind string `koanf:"kind"` // inline, csv, json, sqlite or redis

	// inline
	Values []string `koanf:"values"`

	// csv and json
	Path       string `koanf:"path"`
	Column     int    `koanf:"column"`
	SkipHeader bool   `koanf:"skip_header"`
	Comma      string `koanf:"comma"`

	// sqlite
	DSN   string `koanf:"dsn"`
	Query string `koanf:"query"`

	// redis
	Addr     string `koanf:"addr"`
	Key      string `koanf:"key"`
	PageSize int    `koanf:"page_size"`
}

// FoldConfig selects the reduction.
type FoldConfig struct {
	Element string        `koanf:"element"` // a numeric.Kind
	Op      string        `koanf:"op"`      // one of Ops
	Timeout time.Duration `koanf:"timeout"` // 0 disables the deadline
}

const (
	SourceInline = "inline"
	SourceCSV    = "csv"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceRedis  = "redis"
)

// Ops lists the reductions foldctl can run.
var Ops = []string{"sum", "count", "average", "min", "max"}

var defaults = map[string]any{
	"log.level":          "info",
	"log.format":         "text",
	"source.kind":        SourceInline,
	"source.column":      0,
	"source.skip_header": false,
	"source.comma":       ",",
	"source.addr":        "localhost:6379",
	"source.page_size":   256,
	"fold.element":       string(numeric.Int64),
	"fold.op":            "sum",
	"fold.timeout":       "30s",
}

// Load loads the configuration from the given file path and environment
// variables, in that order of precedence over the defaults. An empty path
// skips the file.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	switch c.Source.Kind {
	case SourceInline:
	case SourceCSV:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path: required for csv sources"))
		}
		if c.Source.Column < 0 {
			errs = append(errs, fmt.Errorf("source.column: must not be negative, got %d", c.Source.Column))
		}
		if len([]rune(c.Source.Comma)) != 1 {
			errs = append(errs, fmt.Errorf("source.comma: must be a single character, got %q", c.Source.Comma))
		}
	case SourceJSON:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path: required for json sources"))
		}
	case SourceSQLite:
		if c.Source.DSN == "" {
			errs = append(errs, errors.New("source.dsn: required for sqlite sources"))
		}
		if c.Source.Query == "" {
			errs = append(errs, errors.New("source.query: required for sqlite sources"))
		}
	case SourceRedis:
		if c.Source.Addr == "" {
			errs = append(errs, errors.New("source.addr: required for redis sources"))
		}
		if c.Source.Key == "" {
			errs = append(errs, errors.New("source.key: required for redis sources"))
		}
		if c.Source.PageSize < 1 {
			errs = append(errs, fmt.Errorf("source.page_size: must be positive, got %d", c.Source.PageSize))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind: unknown kind %q", c.Source.Kind))
	}

	if _, err := numeric.ParseKind(c.Fold.Element); err != nil {
		errs = append(errs, fmt.Errorf("fold.element: %w", err))
	}
	if !slices.Contains(Ops, c.Fold.Op) {
		errs = append(errs, fmt.Errorf("fold.op: unknown op %q", c.Fold.Op))
	}
	if c.Fold.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fold.timeout: must not be negative, got %s", c.Fold.Timeout))
	}

	return errors.Join(errs...)
}
