package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GALTUI_"
	// DefaultFile is read when no config path is given.
	DefaultFile = "galtui.yaml"
)

// Config is the top-level galtui configuration, corresponding to galtui.yaml.
type Config struct {
	Catalog string `koanf:"catalog"`
	Assets  string `koanf:"assets"`
	Page    string `koanf:"page"`
	Watch   bool   `koanf:"watch"`
	LogFile string `koanf:"log_file"`
	MCP     MCP    `koanf:"mcp"`
}

// MCP holds the settings of the MCP binaries.
type MCP struct {
	Port               string        `koanf:"port"`
	SiteDir            string        `koanf:"site_dir"`
	AllowedOrigins     []string      `koanf:"allowed_origins"`
	Stateless          bool          `koanf:"stateless"`
	EnableSuggest      bool          `koanf:"enable_suggest"`
	EnableAdmin        bool          `koanf:"enable_admin"`
	APIKey             string        `koanf:"api_key"`
	RPS                float64       `koanf:"rps"`
	Burst              int           `koanf:"burst"`
	SessionTimeout     time.Duration `koanf:"session_timeout"`
	CacheClearInterval time.Duration `koanf:"cache_clear_interval"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Catalog: "images.json",
		Assets:  "",
		Page:    "/",
		MCP: MCP{
			Port:               "8080",
			SiteDir:            ".",
			RPS:                2,
			Burst:              5,
			SessionTimeout:     15 * time.Minute,
			CacheClearInterval: 30 * time.Minute,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GALTUI_*). A missing file is not an
// error. Nested keys use a double underscore: GALTUI_MCP__API_KEY.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.MCP.AllowedOrigins = splitOrigins(cfg.MCP.AllowedOrigins)
	return cfg, nil
}

// envKey maps GALTUI_MCP__API_KEY to mcp.api_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		for _, p := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(p); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog) == "" {
		return fmt.Errorf("catalog is required")
	}
	if c.MCP.RPS <= 0 {
		return fmt.Errorf("mcp.rps must be positive")
	}
	if c.MCP.Burst <= 0 {
		return fmt.Errorf("mcp.burst must be positive")
	}
	if c.MCP.EnableAdmin && strings.TrimSpace(c.MCP.APIKey) == "" {
		return fmt.Errorf("mcp.enable_admin requires mcp.api_key")
	}
	return nil
}
