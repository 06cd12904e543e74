package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultName         = "huffd"
	DefaultAddr         = ":9300"
	DefaultMaxBodyBytes = 64 << 20
	DefaultBufferSize   = 64 << 10
)

type ServerConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	BufferSize   int      `toml:"buffer_size"`
	// AuthToken, when set, is required as a bearer token on codec routes.
	AuthToken string `toml:"auth_token"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:         DefaultName,
		Addr:         DefaultAddr,
		MaxBodyBytes: DefaultMaxBodyBytes,
		BufferSize:   DefaultBufferSize,
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxBodyBytes < 0 {
		return fmt.Errorf("server config max_body_bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.BufferSize < 0 {
		return fmt.Errorf("server config buffer_size must be positive, got %d", cfg.BufferSize)
	}
	if cfg.AuthToken != strings.TrimSpace(cfg.AuthToken) {
		return fmt.Errorf("server config auth_token has surrounding whitespace")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
