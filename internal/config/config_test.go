package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
	  "basic_config": {"server_address": ":9000", "chat_provider": "openai", "max_turns": 4},
	  "providers": {
	    "openai": {"base_url": "https://api.openai.com/v1", "model": "gpt-4o", "api_key": "sk-test"}
	  },
	  "image": {"api_key": "sk-img", "cache_ttl": 60},
	  "redis": {"host": "localhost", "port": 6379}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasicConfig.ServerAddress != ":9000" || cfg.BasicConfig.MaxTurns != 4 {
		t.Fatalf("basic config %#v", cfg.BasicConfig)
	}
	if cfg.Providers["openai"].Model != "gpt-4o" {
		t.Fatalf("provider %#v", cfg.Providers["openai"])
	}
	if cfg.Image.CacheTTL != 60 {
		t.Fatalf("image config %#v", cfg.Image)
	}
}

func TestLoadInfersChatProvider(t *testing.T) {
	path := writeConfig(t, `{
	  "providers": {"claude": {"model": "claude-sonnet-4-5", "api_key": "k"}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasicConfig.ChatProvider != "claude" {
		t.Fatalf("inferred provider %q", cfg.BasicConfig.ChatProvider)
	}
}

func TestLoadRejectsMissingProviders(t *testing.T) {
	path := writeConfig(t, `{"basic_config": {"chat_provider": "openai"}}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty providers")
	}
}

func TestLoadRejectsUnknownChatProvider(t *testing.T) {
	path := writeConfig(t, `{
	  "basic_config": {"chat_provider": "gemini"},
	  "providers": {"openai": {"model": "gpt-4o", "api_key": "k"}}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown chat_provider")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
