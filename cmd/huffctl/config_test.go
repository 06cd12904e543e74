package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/huffctl/internal/codec"
	"github.com/danmuck/huffctl/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "huffctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCLIConfigDefaultsAndOverrides(t *testing.T) {
	cfg, err := loadCLIConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Options.BufferSize != codec.DefaultBufferSize || cfg.Options.Overwrite || cfg.Stats != statsNone {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	cfg, err = loadCLIConfig(writeConfig(t, `
buffer_size = 4096
stats = "JSON"
overwrite = true
`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Options.BufferSize != 4096 {
		t.Fatalf("unexpected buffer size: %d", cfg.Options.BufferSize)
	}
	if cfg.Stats != statsJSON {
		t.Fatalf("unexpected stats format: %q", cfg.Stats)
	}
	if !cfg.Options.Overwrite {
		t.Fatalf("expected overwrite enabled")
	}
}

func TestLoadCLIConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huffctl.toml")
	if err := config.WriteTemplate(path, config.KindCLI, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Stats != statsText || cfg.Options.BufferSize != 65536 {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
}

func TestLoadCLIConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`buffer_size = 0`,
		`stats = "yaml"`,
		`compression_level = 9`,
		`buffer_size = "big"`,
	}
	for _, content := range cases {
		if _, err := loadCLIConfig(writeConfig(t, content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}
