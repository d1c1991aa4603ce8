package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// shellCompletion describes how one shell's completion script is generated
// and loaded.
type shellCompletion struct {
	name string
	load string
	gen  func(root *cobra.Command, w io.Writer) error
}

var shells = []shellCompletion{
	{
		name: "bash",
		load: "source <(%[1]s completion bash)",
		gen:  func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name: "zsh",
		load: `%[1]s completion zsh > "${fpath[1]}/_%[1]s"`,
		gen:  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name: "fish",
		load: "%[1]s completion fish > ~/.config/fish/completions/%[1]s.fish",
		gen:  func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name: "powershell",
		load: "%[1]s completion powershell | Out-String | Invoke-Expression",
		gen:  func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

func shellNames() []string {
	names := make([]string, len(shells))
	for i, s := range shells {
		names[i] = s.name
	}
	return names
}

// completeFormat offers the output formats for --format.
func completeFormat(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{formatText, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp
}

func completionHelp() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Print a completion script for %s. Usernames are not completed; flags,\n", appName)
	b.WriteString("subcommands and report formats are.\n\nTo load completions:\n")
	for _, s := range shells {
		fmt.Fprintf(&b, "\n  %-11s %s", s.name+":", fmt.Sprintf(s.load, appName))
	}
	b.WriteString("\n")
	return b.String()
}

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [" + strings.Join(shellNames(), "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  completionHelp(),
		DisableFlagsInUseLine: true,
		ValidArgs:             shellNames(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range shells {
				if s.name == args[0] {
					return s.gen(cmd.Root(), cmd.OutOrStdout())
				}
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
