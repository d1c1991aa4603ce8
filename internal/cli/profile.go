package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghprofile/internal/config"
	pkgio "github.com/matzehuels/ghprofile/pkg/io"
	"github.com/matzehuels/ghprofile/pkg/observability"
	"github.com/matzehuels/ghprofile/pkg/profile"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// profileOptions holds the flags of the profile command.
type profileOptions struct {
	Commits     bool
	Contributed bool
	Format      string
	Output      string
	Concurrency int
	Timeout     time.Duration
	Browse      bool
}

// profileCommand creates the profile command.
func (c *CLI) profileCommand() *cobra.Command {
	opts := profileOptions{Format: formatText}

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Build a profile of a GitHub user",
		Long: `Build a profile of a GitHub user from the public API and profile page.

Fields that cannot be fetched are reported as unavailable together with the
reason; the command still succeeds. Commit statistics and the contributed
repositories count cost extra requests per repository and are off by default.`,
		Example: `  ghprofile profile octocat
  ghprofile profile octocat --commits --concurrency 4
  ghprofile profile octocat --format json > octocat.json
  ghprofile profile octocat -o octocat.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg, err := c.loadConfig(func(cfg *config.Config) {
				if flags.Changed("concurrency") {
					cfg.Concurrency = opts.Concurrency
				}
				if flags.Changed("timeout") {
					cfg.Timeout = opts.Timeout
				}
			})
			if err != nil {
				return err
			}
			return c.runProfile(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.Commits, "commits", false, "collect commit statistics and the good-message ratio")
	f.BoolVar(&opts.Contributed, "contributed", false, "count repositories the user appears in as a contributor")
	f.StringVarP(&opts.Format, "format", "f", formatText, "output format: text, json, yaml")
	f.StringVarP(&opts.Output, "output", "o", "", "write the report to a .json or .yaml file")
	f.IntVarP(&opts.Concurrency, "concurrency", "j", profile.DefaultConcurrency, "per-repository requests in flight")
	f.DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (default from config, 10s)")
	f.BoolVar(&opts.Browse, "browse", false, "browse repositories interactively after the build")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)

	return cmd
}

// runProfile builds the profile of username and writes it to w or opts.Output.
func (c *CLI) runProfile(ctx context.Context, w io.Writer, username string, cfg config.Config, opts profileOptions) error {
	if opts.Output == "" {
		if err := validateFormat(opts.Format); err != nil {
			return err
		}
	}

	client, store, err := c.newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	builder := profile.NewBuilder(client, profile.Options{
		Commits:     opts.Commits,
		Contributed: opts.Contributed,
		Concurrency: cfg.Concurrency,
		Vocabulary:  cfg.Vocabulary,
	}, c.Logger)

	p, err := c.build(ctx, builder, username)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := pkgio.Export(p, opts.Output); err != nil {
			return err
		}
		printSuccess("Saved profile of %s", username)
		printFile(opts.Output)
		reportIssues(p)
		printNextStep("View it with", "ghprofile show "+opts.Output)
	} else {
		if err := render(w, p, opts.Format); err != nil {
			return err
		}
		if opts.Format != formatText {
			reportIssues(p)
		}
	}

	if opts.Browse {
		return browse(ctx, p)
	}
	return nil
}

// build runs builder under a spinner that follows the profile steps.
func (c *CLI) build(ctx context.Context, builder *profile.Builder, username string) (*profile.Profile, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Profiling %s...", username))

	prev := observability.Profile()
	observability.SetProfileHooks(&spinnerHooks{ProfileHooks: prev, spinner: spinner})
	defer observability.SetProfileHooks(prev)

	prog := newProgress(c.Logger)
	spinner.Start()
	p, err := builder.Build(ctx, username)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", username, err)
	}
	prog.done(fmt.Sprintf("Built profile of %s", username))
	return p, nil
}

// reportIssues prints one warning per unavailable field.
func reportIssues(p *profile.Profile) {
	for _, is := range p.Issues {
		printWarning("%s", issueLine(is))
	}
}

// spinnerHooks shows the running step in the spinner and forwards every
// event to the previously registered hooks.
type spinnerHooks struct {
	observability.ProfileHooks
	spinner *Spinner
}

func (h *spinnerHooks) OnStepStart(ctx context.Context, username, step string) {
	h.spinner.Update(fmt.Sprintf("Profiling %s: %s...", username, step))
	h.ProfileHooks.OnStepStart(ctx, username, step)
}
