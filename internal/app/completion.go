package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell autocompletion scripts",
		Long: `Generate autocompletion scripts for your shell.

Examples:
  # Bash (add to ~/.bashrc)
  source <(gamedock completion bash)

  # Zsh (add to ~/.zshrc)
  source <(gamedock completion zsh)

  # Fish
  gamedock completion fish > ~/.config/fish/completions/gamedock.fish

  # PowerShell
  gamedock completion powershell | Out-String | Invoke-Expression`,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return cmd.Help()
			}
		},
	}

	return cmd
}

// completeTitles offers game titles for commands that take a query.
func completeTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := openSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if toComplete == "" {
		return gameTitles(s.store.List(catalog.All)), cobra.ShellCompDirectiveNoFileComp
	}
	return gameTitles(s.store.MatchLoose(toComplete)), cobra.ShellCompDirectiveNoFileComp
}

// completePlatforms offers platform and view keys for --platform.
func completePlatforms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var keys []string
	for _, p := range append(catalog.Views(), catalog.Platforms()...) {
		keys = append(keys, p.Key()+"\t"+p.String())
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func gameTitles(games []*catalog.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title()
	}
	return out
}
