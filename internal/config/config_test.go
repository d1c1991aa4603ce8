package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	perrors "github.com/matzehuels/ghprofile/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("default cache backend = %q, want %q", cfg.Cache.Backend, CacheNone)
	}
	if cfg.Attempts != 1 || cfg.Concurrency != 1 {
		t.Errorf("default attempts/concurrency = %d/%d, want 1/1", cfg.Attempts, cfg.Concurrency)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
token = "secret"
concurrency = 4
timeout = "30s"
commit_vocabulary = ["fix", "document"]

[cache]
backend = "redis"
ttl = "1h"
redis_addr = "cache:6379"
redis_db = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Token != "secret" || cfg.Concurrency != 4 || cfg.Timeout != 30*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Vocabulary) != 2 || cfg.Vocabulary[1] != "document" {
		t.Errorf("Vocabulary = %v", cfg.Vocabulary)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL != time.Hour || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	// Keys absent from the file keep their defaults.
	if cfg.APIURL != Default().APIURL || cfg.Attempts != 1 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != Default().APIURL {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"malformed", "token = ", "read config"},
		{"unknown key", "tokne = \"x\"", "tokne"},
		{"unknown nested key", "[cache]\nbackend = \"file\"\nsize = 3", "cache.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
				t.Fatalf("Load() error = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Token = "from-file"

	env := map[string]string{EnvToken: "from-env", EnvAPIURL: "https://ghe.example.com/api/v3"}
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.Token)
	}
	if cfg.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}

	cfg.ApplyEnv(func(string) string { return "" })
	if cfg.Token != "from-env" {
		t.Error("empty environment should not clear settings")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"zero attempts", func(c *Config) { c.Attempts = 0 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"empty api url", func(c *Config) { c.APIURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := Path()
	if err != nil || p != filepath.Join("/xdg", AppName, "config.toml") {
		t.Errorf("Path() = %q, %v", p, err)
	}

	t.Setenv(EnvConfig, "/etc/ghprofile.toml")
	if p, _ := Path(); p != "/etc/ghprofile.toml" {
		t.Errorf("Path() with %s = %q", EnvConfig, p)
	}

	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if p, _ := Path(); p != filepath.Join(home, ".config", AppName, "config.toml") {
		t.Errorf("Path() default = %q", p)
	}
}
