package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/ghprofile/pkg/io"
)

// showCommand creates the show command, which re-renders a saved report.
func (c *CLI) showCommand() *cobra.Command {
	var (
		format   string
		doBrowse bool
	)

	cmd := &cobra.Command{
		Use:   "show <report.json|report.yaml>",
		Short: "Render a saved profile report",
		Long: `Render a report written by "ghprofile profile --output".

The report is printed as a text summary by default. Use --format to convert
between JSON and YAML.`,
		Example: `  ghprofile show octocat.json
  ghprofile show octocat.json --format yaml > octocat.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			p, err := pkgio.Import(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("loaded report", "path", args[0], "user", p.Username, "run", p.RunID)

			if err := render(cmd.OutOrStdout(), p, format); err != nil {
				return err
			}
			if doBrowse {
				return browse(cmd.Context(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")
	cmd.Flags().BoolVar(&doBrowse, "browse", false, "browse repositories interactively")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)

	return cmd
}
