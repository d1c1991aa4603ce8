package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghprofile/internal/config"
	"github.com/matzehuels/ghprofile/pkg/buildinfo"
	perrors "github.com/matzehuels/ghprofile/pkg/errors"
	"github.com/matzehuels/ghprofile/pkg/integrations/github/githubtest"
	"github.com/matzehuels/ghprofile/pkg/observability"
	"github.com/matzehuels/ghprofile/pkg/profile"
)

// newTestCLI returns a CLI with a silent logger and an empty environment.
func newTestCLI(t *testing.T, env map[string]string) *CLI {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.getenv = func(k string) string { return env[k] }
	t.Cleanup(observability.Reset)
	return c
}

// captureStatus redirects status lines for the duration of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = prev })
	return &buf
}

// writeConfig writes a config file pointing at srv and returns its path.
func writeConfig(t *testing.T, srv *githubtest.Server, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "api_url = \"" + srv.APIURL() + "\"\nweb_url = \"" + srv.WebURL() + "\"\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFakeGitHub(t *testing.T) *githubtest.Server {
	srv := githubtest.New(t)
	srv.AddUser(githubtest.Account{
		Login:         "octocat",
		CreatedAt:     "2011-01-25T18:44:36Z",
		Orgs:          []string{"github"},
		Followers:     []string{"alice"},
		Contributions: 1234,
	})
	srv.AddRepo(githubtest.Repo{
		Owner: "octocat", Name: "hello", Stars: 5, Forks: 1,
		Languages: map[string]int{"Go": 100},
		Commits:   []githubtest.Commit{{Author: "octocat", Message: "fix typo", Files: []string{"main.go"}}},
	})
	srv.AddRepo(githubtest.Repo{
		Owner: "octocat", Name: "scripts", Stars: 2,
		Languages: map[string]int{"Go": 1, "Python": 50},
	})
	return srv
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI(t, nil).RootCommand()

	want := []string{"profile", "show", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", root.Version, buildinfo.Version)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("token = \"from-file\"\nconcurrency = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		env       map[string]string
		flagToken string
		wantToken string
	}{
		{"file only", nil, "", "from-file"},
		{"env overrides file", map[string]string{config.EnvToken: "from-env"}, "", "from-env"},
		{"flag overrides env", map[string]string{config.EnvToken: "from-env"}, "from-flag", "from-flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, tt.env)
			c.configPath = path
			c.token = tt.flagToken

			cfg, err := c.loadConfig()
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", cfg.Token, tt.wantToken)
			}
			if cfg.Concurrency != 3 {
				t.Errorf("Concurrency = %d, want 3", cfg.Concurrency)
			}
		})
	}
}

func TestLoadConfigOverrideValidated(t *testing.T) {
	c := newTestCLI(t, nil)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")

	_, err := c.loadConfig(func(cfg *config.Config) { cfg.Concurrency = 0 })
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("loadConfig() error = %v, want INVALID_INPUT", err)
	}
}

func TestProfileCommandJSON(t *testing.T) {
	srv := newFakeGitHub(t)
	c := newTestCLI(t, nil)
	captureStatus(t)

	out, err := execute(t, c, "profile", "octocat", "--config", writeConfig(t, srv, ""), "--format", "json", "--commits")
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if p.Username != "octocat" {
		t.Errorf("Username = %q", p.Username)
	}
	if got := p.LanguageUsage; got["Go"] != 2 || got["Python"] != 1 {
		t.Errorf("LanguageUsage = %v, want Go:2 Python:1", got)
	}
	if p.StarsTotal == nil || *p.StarsTotal != 7 {
		t.Errorf("StarsTotal = %v, want 7", p.StarsTotal)
	}
	if p.YearlyContributions == nil || *p.YearlyContributions != 1234 {
		t.Errorf("YearlyContributions = %v, want 1234", p.YearlyContributions)
	}
	if p.GoodMessageRatio == nil || *p.GoodMessageRatio != 1 {
		t.Errorf("GoodMessageRatio = %v, want 1", p.GoodMessageRatio)
	}
}

func TestProfileCommandText(t *testing.T) {
	srv := newFakeGitHub(t)
	srv.Fail("/api/users/octocat/projects", 404)
	c := newTestCLI(t, nil)
	captureStatus(t)

	out, err := execute(t, c, "profile", "octocat", "--config", writeConfig(t, srv, ""))
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	for _, want := range []string{"octocat", "Stars", "7", "Languages", "Python", "projects: not_found"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestProfileCommandOutputFile(t *testing.T) {
	srv := newFakeGitHub(t)
	c := newTestCLI(t, nil)
	status := captureStatus(t)
	path := filepath.Join(t.TempDir(), "octocat.yaml")

	out, err := execute(t, c, "profile", "octocat", "--config", writeConfig(t, srv, ""), "-o", path)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", out)
	}
	if !strings.Contains(status.String(), path) {
		t.Errorf("status output should name the file:\n%s", status.String())
	}

	out, err = execute(t, c, "show", path, "--format", "json")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	var p profile.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("show output is not JSON: %v", err)
	}
	if p.RepositoriesCount == nil || *p.RepositoriesCount != 2 {
		t.Errorf("RepositoriesCount = %v, want 2", p.RepositoriesCount)
	}
}

func TestProfileCommandErrors(t *testing.T) {
	srv := newFakeGitHub(t)

	tests := []struct {
		name string
		args []string
		code perrors.Code
	}{
		{"invalid username", []string{"profile", "not/valid"}, perrors.ErrCodeInvalidUsername},
		{"invalid format", []string{"profile", "octocat", "--format", "xml"}, perrors.ErrCodeInvalidFormat},
		{"invalid concurrency", []string{"profile", "octocat", "--concurrency", "0"}, perrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, nil)
			captureStatus(t)
			args := append(tt.args, "--config", writeConfig(t, srv, ""))
			_, err := execute(t, c, args...)
			if !perrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestProfileCommandFileCache(t *testing.T) {
	srv := newFakeGitHub(t)
	cfg := writeConfig(t, srv, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(t.TempDir())+"\"\n")

	for i := 0; i < 2; i++ {
		c := newTestCLI(t, nil)
		captureStatus(t)
		if _, err := execute(t, c, "profile", "octocat", "--config", cfg, "--format", "json"); err != nil {
			t.Fatalf("run %d: profile error: %v", i, err)
		}
	}

	for _, path := range []string{"/api/users/octocat", "/api/users/octocat/repos", "/web/octocat"} {
		if got := srv.Hits(path); got != 1 {
			t.Errorf("hits for %s = %d, want 1 (second run served from cache)", path, got)
		}
	}
}

func TestShowCommandMissingFile(t *testing.T) {
	c := newTestCLI(t, nil)
	if _, err := execute(t, c, "show", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("show should fail for a missing report")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, newTestCLI(t, nil), "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	if _, err := execute(t, newTestCLI(t, nil), "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestCompletionHelpListsShells(t *testing.T) {
	help := completionHelp()
	for _, want := range []string{
		"source <(ghprofile completion bash)",
		`"${fpath[1]}/_ghprofile"`,
		"completions/ghprofile.fish",
		"ghprofile completion powershell",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("completion help missing %q:\n%s", want, help)
		}
	}
}

func TestFormatFlagCompletion(t *testing.T) {
	for _, sub := range []string{"profile", "show"} {
		out, err := execute(t, newTestCLI(t, nil), cobra.ShellCompRequestCmd, sub, "--format", "")
		if err != nil {
			t.Fatalf("__complete %s error: %v", sub, err)
		}
		for _, f := range []string{formatText, formatJSON, formatYAML} {
			if !strings.Contains(out, f+"\n") {
				t.Errorf("%s --format completions %q missing %s", sub, out, f)
			}
		}
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	t.Cleanup(observability.Reset)

	c.SetLogLevel(LogDebug)
	observability.HTTP().OnRequest(context.Background(), "GET", "api.github.com", "/users/octocat")

	if !strings.Contains(buf.String(), "/users/octocat") {
		t.Errorf("debug level should log requests, got %q", buf.String())
	}
}
