package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ghprofile/internal/config"
	"github.com/matzehuels/ghprofile/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	tests := []struct {
		name string
		cfg  config.CacheConfig
		want string
	}{
		{"configured", config.CacheConfig{Dir: "/srv/cache"}, "/srv/cache"},
		{"default", config.CacheConfig{}, filepath.Join("/tmp/xdg", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileCacheDir(tt.cfg)
			if err != nil {
				t.Fatalf("fileCacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("fileCacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	store, err := newCache(ctx, config.CacheConfig{Backend: config.CacheNone})
	if err != nil {
		t.Fatalf("newCache(none) error: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("newCache(none) = %T, want cache.NullCache", store)
	}

	dir := t.TempDir()
	store, err = newCache(ctx, config.CacheConfig{Backend: config.CacheFile, Dir: dir})
	if err != nil {
		t.Fatalf("newCache(file) error: %v", err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache(file) = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}
}

func TestCacheLocation(t *testing.T) {
	got := cacheLocation(config.CacheConfig{Backend: config.CacheRedis, RedisAddr: "cache:6379", RedisDB: 2})
	if got != "redis://cache:6379/2" {
		t.Errorf("cacheLocation(redis) = %q", got)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, newTestCLI(t, nil), "cache", "path", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	status := captureStatus(t)
	if _, err := execute(t, newTestCLI(t, nil), "cache", "clear", "--config", cfgPath); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(status.String(), "Cleared 3 cached entries") {
		t.Errorf("status = %q", status.String())
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry should be gone after clear")
	}
}

func TestCacheClearDisabled(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	status := captureStatus(t)

	if _, err := execute(t, newTestCLI(t, nil), "cache", "clear", "--config", cfgPath); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(status.String(), "disabled") {
		t.Errorf("status = %q", status.String())
	}
}
