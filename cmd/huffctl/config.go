package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/huffctl/internal/codec"
)

const (
	statsNone = "none"
	statsText = "text"
	statsJSON = "json"
)

type fileConfig struct {
	BufferSize int    `toml:"buffer_size"`
	Stats      string `toml:"stats"`
	Overwrite  bool   `toml:"overwrite"`
}

type cliConfig struct {
	Options codec.Options
	Stats   string
}

func defaultCLIConfig() cliConfig {
	return cliConfig{Options: codec.DefaultOptions(), Stats: statsNone}
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load huffctl config: %w", err)
	}

	if meta.IsDefined("buffer_size") {
		if raw.BufferSize <= 0 {
			return cliConfig{}, fmt.Errorf("buffer_size must be positive, got %d", raw.BufferSize)
		}
		cfg.Options.BufferSize = raw.BufferSize
	}

	if meta.IsDefined("stats") {
		format, err := parseStatsFormat(raw.Stats)
		if err != nil {
			return cliConfig{}, err
		}
		cfg.Stats = format
	}

	if meta.IsDefined("overwrite") {
		cfg.Options.Overwrite = raw.Overwrite
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cliConfig{}, fmt.Errorf("unknown config key: %s", undecoded[0])
	}

	return cfg, nil
}

func parseStatsFormat(raw string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "", statsNone:
		return statsNone, nil
	case statsText, statsJSON:
		return v, nil
	default:
		return "", fmt.Errorf("unknown stats format: %q", raw)
	}
}
