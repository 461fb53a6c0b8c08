package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Catalog != "images.json" {
		t.Errorf("expected default catalog %q, got %q", "images.json", cfg.Catalog)
	}
	if cfg.Page != "/" {
		t.Errorf("expected default page %q, got %q", "/", cfg.Page)
	}
	if cfg.MCP.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.MCP.Port)
	}
	if cfg.MCP.RPS != 2 || cfg.MCP.Burst != 5 {
		t.Errorf("unexpected rate limit defaults: rps=%v burst=%d", cfg.MCP.RPS, cfg.MCP.Burst)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Catalog, DefaultConfig().Catalog) {
		t.Errorf("expected defaults when file is missing")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "galtui.yml")
	data := `
catalog: https://example.com/src
assets: ../../public
page: /cats.html
watch: true
mcp:
  port: "9090"
  allowed_origins:
    - https://app.example
  enable_suggest: true
  rps: 10
  burst: 20
  session_timeout: 5m
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Catalog != "https://example.com/src" {
		t.Errorf("catalog: got %q", cfg.Catalog)
	}
	if cfg.Assets != "../../public" {
		t.Errorf("assets: got %q", cfg.Assets)
	}
	if cfg.Page != "/cats.html" || !cfg.Watch {
		t.Errorf("page/watch: got %q %v", cfg.Page, cfg.Watch)
	}
	if cfg.MCP.Port != "9090" || !cfg.MCP.EnableSuggest {
		t.Errorf("mcp: got %+v", cfg.MCP)
	}
	if !reflect.DeepEqual(cfg.MCP.AllowedOrigins, []string{"https://app.example"}) {
		t.Errorf("allowed_origins: got %v", cfg.MCP.AllowedOrigins)
	}
	if cfg.MCP.RPS != 10 || cfg.MCP.Burst != 20 {
		t.Errorf("rate limit: got rps=%v burst=%d", cfg.MCP.RPS, cfg.MCP.Burst)
	}
	if cfg.MCP.SessionTimeout != 5*time.Minute {
		t.Errorf("session_timeout: got %v", cfg.MCP.SessionTimeout)
	}
	if cfg.MCP.CacheClearInterval != 30*time.Minute {
		t.Errorf("unset keys should keep defaults, got %v", cfg.MCP.CacheClearInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "galtui.yml")
	if err := os.WriteFile(path, []byte("catalog: from-file.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GALTUI_CATALOG", "from-env.json")
	t.Setenv("GALTUI_MCP__API_KEY", "secret")
	t.Setenv("GALTUI_MCP__ENABLE_ADMIN", "true")
	t.Setenv("GALTUI_MCP__ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Catalog != "from-env.json" {
		t.Errorf("env should override file, got %q", cfg.Catalog)
	}
	if cfg.MCP.APIKey != "secret" || !cfg.MCP.EnableAdmin {
		t.Errorf("nested env overrides not applied: %+v", cfg.MCP)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.MCP.AllowedOrigins, want) {
		t.Errorf("allowed_origins: got %v, want %v", cfg.MCP.AllowedOrigins, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty catalog", mutate: func(c *Config) { c.Catalog = " " }},
		{name: "zero rps", mutate: func(c *Config) { c.MCP.RPS = 0 }},
		{name: "negative burst", mutate: func(c *Config) { c.MCP.Burst = -1 }},
		{name: "admin without key", mutate: func(c *Config) { c.MCP.EnableAdmin = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
