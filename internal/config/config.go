// Package config loads ghprofile settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, environment
// variables, command-line flags. Flags are applied by the CLI.
//
//	token = "ghp_..."
//	concurrency = 4
//	timeout = "30s"
//
//	[cache]
//	backend = "file"
//	ttl = "12h"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/ghprofile/pkg/errors"
	"github.com/matzehuels/ghprofile/pkg/integrations/github"
)

// AppName names the config and cache directories.
const AppName = "ghprofile"

// Environment variables read by [Config.ApplyEnv] and [Path].
const (
	EnvConfig = "GHPROFILE_CONFIG"
	EnvToken  = "GITHUB_TOKEN"
	EnvAPIURL = "GITHUB_API_URL"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config holds every setting the CLI reads from outside its flags.
type Config struct {
	Token       string        `toml:"token"`
	APIURL      string        `toml:"api_url"`
	WebURL      string        `toml:"web_url"`
	Concurrency int           `toml:"concurrency"`
	Timeout     time.Duration `toml:"timeout"`
	Attempts    int           `toml:"attempts"`

	// Vocabulary overrides the verbs that mark a good commit message.
	Vocabulary []string `toml:"commit_vocabulary"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
}

// Default returns the built-in settings: anonymous access to the public
// GitHub endpoints, one request at a time, no cache.
func Default() Config {
	return Config{
		APIURL:      github.DefaultAPIURL,
		WebURL:      github.DefaultWebURL,
		Concurrency: 1,
		Timeout:     10 * time.Second,
		Attempts:    1,
		Cache: CacheConfig{
			Backend:   CacheNone,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
	}
}

// Path returns the config file location: $GHPROFILE_CONFIG, else
// $XDG_CONFIG_HOME/ghprofile/config.toml, else ~/.config/ghprofile/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path over [Default]. A missing file is not an error.
// Unknown keys are rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables read with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q (use none, file or redis)", c.Cache.Backend)
	}
	if c.Concurrency < 1 {
		return perrors.New(perrors.ErrCodeInvalidInput, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Attempts < 1 {
		return perrors.New(perrors.ErrCodeInvalidInput, "attempts must be at least 1, got %d", c.Attempts)
	}
	if c.Timeout <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.APIURL == "" || c.WebURL == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "api_url and web_url must not be empty")
	}
	return nil
}
