package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
	Image       ImageConfig               `json:"image"`
	Redis       RedisConfig               `json:"redis"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	ChatProvider  string `json:"chat_provider"`
	MaxTurns      int    `json:"max_turns"` // concurrent in-flight turns across all games
}

type ImageConfig struct {
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url"`
	Model       string `json:"model"`
	Size        string `json:"size"`
	Quality     string `json:"quality"`
	StylePrefix string `json:"style_prefix"`
	CacheTTL    int    `json:"cache_ttl"` // minutes; 0 disables expiry
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Load reads configuration from the provided path (defaults to config.json).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("at least one provider must be configured")
	}
	if cfg.BasicConfig.ChatProvider == "" {
		for name := range cfg.Providers {
			cfg.BasicConfig.ChatProvider = name
			break
		}
	}
	if _, ok := cfg.Providers[cfg.BasicConfig.ChatProvider]; !ok {
		return nil, fmt.Errorf("chat_provider %q not present in providers", cfg.BasicConfig.ChatProvider)
	}

	return &cfg, nil
}
