package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func newInfoCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:               "info <query>",
		Short:             "Show everything gamedock knows about a game",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			g, err := s.resolve(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), g.Record())
			}
			printGame(s, g)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printGame(s *session, g *catalog.Game) {
	header("%s", g.Title())
	printField("platform", g.Platform().String())
	if g.ID() != "" {
		printField("id", g.ID())
	}
	printField("alias", g.Alias())

	state := color.GreenString("installed")
	if !g.Installed() {
		state = color.RedString("not installed")
	}
	printField("state", state)

	var flags []string
	if g.Favourite() {
		flags = append(flags, "favourite")
	}
	if g.Hidden() {
		flags = append(flags, "hidden")
	}
	if g.New() {
		flags = append(flags, "new")
	}
	if len(flags) > 0 {
		printField("flags", strings.Join(flags, ", "))
	}
	if tags := g.Tags(); len(tags) > 0 {
		printField("tags", color.CyanString(strings.Join(tags, ", ")))
	}
	printField("rating", fmt.Sprintf("%d/%d", g.Rating(), catalog.MaxRating))
	printField("runs", fmt.Sprintf("%d", g.Runs()))
	if !g.LastRun().IsZero() {
		printField("last run", g.LastRun().Local().Format("2006-01-02 15:04"))
	}
	printField("frequency", fmt.Sprintf("%.2f", g.Frequency()))

	if g.LaunchURL() != "" {
		printField("launch url", g.LaunchURL())
	}
	if g.Launch() != "" {
		printField("launch", g.Launch())
	}
	if g.Uninstall() != "" {
		printField("uninstall", g.Uninstall())
	}
	if h, found := s.reg.Handler(g.Platform()); found {
		if icon := h.IconURL(g); icon != "" {
			printField("icon", icon)
		}
	} else if g.Icon() != "" {
		printField("icon", g.Icon())
	}
}
