package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghprofile/internal/config"
	"github.com/matzehuels/ghprofile/pkg/buildinfo"
	"github.com/matzehuels/ghprofile/pkg/cache"
	"github.com/matzehuels/ghprofile/pkg/integrations"
	"github.com/matzehuels/ghprofile/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	token      string
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level. At debug level every HTTP request,
// cache access and profile step is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ghprofile summarizes a GitHub user's public activity",
		Long:         `ghprofile collects a GitHub user's organizations, followers, repositories, languages, stars, forks, account age and yearly contributions into a single report.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ghprofile/config.toml)")
	root.PersistentFlags().StringVar(&c.token, "token", "", "GitHub token (overrides config and "+config.EnvToken+")")

	root.AddCommand(c.profileCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig resolves settings from the config file, the environment, the
// persistent flags and finally overrides, in that order.
func (c *CLI) loadConfig(overrides ...func(*config.Config)) (config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Config{}, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv(c.getenv)
	if c.token != "" {
		cfg.Token = c.token
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend, "authenticated", cfg.Token != "")
	return cfg, nil
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates a GitHub client for cfg. The returned cache must be
// closed by the caller.
func (c *CLI) newClient(ctx context.Context, cfg config.Config) (*github.Client, cache.Cache, error) {
	store, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	client := github.NewClient(github.Config{
		APIURL:     cfg.APIURL,
		WebURL:     cfg.WebURL,
		Token:      cfg.Token,
		Attempts:   cfg.Attempts,
		Cache:      store,
		CacheTTL:   cfg.Cache.TTL,
		Logger:     c.Logger,
		HTTPClient: integrations.NewHTTPClient(cfg.Timeout),
	})
	return client, store, nil
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheFile:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ghprofile/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir returns the configured directory, or cacheDir when unset.
func fileCacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}
