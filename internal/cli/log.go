// Package cli implements the ghprofile command-line interface.
//
// # Commands
//
//   - profile: build a profile of a GitHub user and print or save it
//   - show: render a previously saved report
//   - cache: manage the optional HTTP response cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings come from the config file (see the config package), then the
// GITHUB_TOKEN and GITHUB_API_URL environment variables, then flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose mode
// every HTTP request and profile step is logged through the observability
// hooks. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghprofile/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Built profile of octocat (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks logs observability events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes HTTP, cache and profile events to l.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
	observability.SetProfileHooks(h)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", shortKey(key))
}

func (h *logHooks) OnCacheMiss(context.Context, string) {}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", shortKey(key), "bytes", size)
}

func (h *logHooks) OnBuildStart(_ context.Context, username string) {
	h.logger.Debug("building profile", "user", username)
}

func (h *logHooks) OnBuildComplete(_ context.Context, username string, issues int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "user", username, "err", err)
		return
	}
	h.logger.Debug("build complete", "user", username, "issues", issues, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnStepStart(_ context.Context, username, step string) {
	h.logger.Debug("step", "user", username, "step", step)
}

func (h *logHooks) OnStepComplete(_ context.Context, username, step string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("step unavailable", "step", step, "err", err, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("step done", "step", step, "duration", d.Round(time.Millisecond))
}

func shortKey(key string) string {
	if len(key) > 24 {
		return key[:24] + "…"
	}
	return key
}
