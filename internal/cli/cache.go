package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghprofile/internal/config"
	"github.com/matzehuels/ghprofile/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
		Long: `Manage the HTTP response cache.

Caching is off unless the config file selects a backend:

  [cache]
  backend = "file"   # or "redis"
  ttl = "12h"`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Cache is disabled")
				return nil
			}

			store, err := newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", cfg.Cache.Backend)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Location: %s", cacheLocation(cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Long:  "Print the cache directory, or the Redis address when the redis backend is selected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheRedis {
				fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache))
				return nil
			}
			dir, err := fileCacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheLocation describes where the backend keeps its entries.
func cacheLocation(cfg config.CacheConfig) string {
	if cfg.Backend == config.CacheRedis {
		return fmt.Sprintf("redis://%s/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	dir, err := fileCacheDir(cfg)
	if err != nil {
		return "unknown"
	}
	return dir
}
