package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SPIRALSCAN_"

// Configuration drives the spiral layout and the simulated scan
type Configuration struct {
	// spiral layout
	StartRadius  int `koanf:"start_radius" validate:"min=1"`
	SegmentSize  int `koanf:"segment_size" validate:"min=1"`
	SegmentCount int `koanf:"segment_count" validate:"min=1,max=100000"`
	EraseWindow  int `koanf:"erase_window" validate:"min=0"`

	// UI
	RefreshHz int    `koanf:"refresh_hz" validate:"min=1,max=240"`
	QueueSize int    `koanf:"queue_size" validate:"min=1"`
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error off"`

	// simulated medium
	Sectors         int64   `koanf:"sectors" validate:"min=1"`
	MinRequired     int     `koanf:"min_required" validate:"min=0,max=1000"`
	ReadDelayMs     int     `koanf:"read_delay_ms" validate:"min=0"`
	UnreadableRatio float64 `koanf:"unreadable_ratio" validate:"min=0,max=1"`
	Seed            int64   `koanf:"seed"`
}

func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"start_radius":     10,
		"segment_size":     5,
		"segment_count":    4800,
		"erase_window":     300,
		"refresh_hz":       60,
		"queue_size":       100,
		"log_level":        "info",
		"sectors":          2295104,
		"min_required":     0,
		"read_delay_ms":    2,
		"unreadable_ratio": 0.02,
		"seed":             1,
	}
}

// Load applies defaults, then the JSON file at path (when it exists), then
// SPIRALSCAN_* environment variables.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: SPIRALSCAN_SEGMENT_COUNT -> segment_count
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
