package app

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <query|#n>",
		Short: "Launch a game",
		Long: `Launch the game a query names. The query may be an exact title, an
alias or any search query with a single best match, or #n to pick the
n-th result of the last search.

Uninstalled games are handed to their store to install instead.

Examples:
  gamedock run "Hollow Knight"
  gamedock run hk
  gamedock run '#2'`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return quickLaunch(strings.Join(args, " "))
		},
	}
}

// quickLaunch resolves query and launches the game.
func quickLaunch(query string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	g, err := s.resolve(query)
	if err != nil {
		return err
	}
	installed := g.Installed()
	if err := s.launch(g); err != nil {
		return err
	}
	if installed {
		ok("Launched %s", g.Title())
	} else {
		ok("%s is not installed; opened its installer", g.Title())
	}
	return nil
}
