// Package config loads formkit settings from defaults, an optional JSON file
// and FORMKIT_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read by Load.
const EnvPrefix = "FORMKIT_"

// Config holds the settings shared by the CLI commands and the server.
type Config struct {
	Addr                 string `koanf:"addr" validate:"required"`
	Renderer             string `koanf:"renderer" validate:"oneof=html tui"`
	Theme                string `koanf:"theme"`
	Variant              string `koanf:"variant"`
	LogLevel             string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat            string `koanf:"log_format" validate:"oneof=text json"`
	SchemaFile           string `koanf:"schema_file"`
	TemplatesDir         string `koanf:"templates_dir"`
	OutputFormat         string `koanf:"output_format" validate:"oneof=json form pretty"`
	PageSize             int    `koanf:"page_size" validate:"min=1,max=500"`
	ShutdownGraceSeconds int    `koanf:"shutdown_grace_seconds" validate:"min=0,max=300"`
}

// ShutdownGrace returns the graceful shutdown window.
func (c Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceSeconds) * time.Second
}

// Defaults returns the values used before any file or environment override.
func Defaults() map[string]any {
	return map[string]any{
		"addr":                   ":8080",
		"renderer":               "html",
		"theme":                  "formkit",
		"variant":                "",
		"log_level":              "info",
		"log_format":             "text",
		"schema_file":            "",
		"templates_dir":          "",
		"output_format":          "json",
		"page_size":              50,
		"shutdown_grace_seconds": 10,
	}
}

// Load applies defaults, then path (when non-empty; it must exist), then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: set default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps FORMKIT_PAGE_SIZE to page_size.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
