package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func newListCmd() *cobra.Command {
	var (
		view      string
		tag       string
		installed bool
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the games in a platform or view",
		Long: `List the games in one platform or view, in the current sort order.

Uninstalled games are prefixed with '*' and favourites marked [F].
Hidden games only show in the hidden, favourites and new views.

Examples:
  gamedock list
  gamedock list --platform steam
  gamedock list --platform favourites --tag rpg
  gamedock list --installed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseView(view)
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}

			games := s.store.Visible(p)
			titles := s.store.Titles(p)
			keep := map[*catalog.Game]bool{}
			for _, g := range (catalog.Filter{Tag: tag, InstalledOnly: installed}).Apply(games) {
				keep[g] = true
			}

			if jsonOut {
				records := []catalog.Record{}
				for _, g := range games {
					if keep[g] {
						records = append(records, g.Record())
					}
				}
				return writeJSON(cmd.OutOrStdout(), records)
			}

			header("── %s", p)
			shown := 0
			for i, g := range games {
				if !keep[g] {
					continue
				}
				shown++
				fmt.Fprintf(cmd.OutOrStdout(), "  %3d  %s%s%s\n", i+1, titles[i], platformSuffix(p, g), ratingSuffix(g))
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No games found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&view, "platform", "p", "all", "Platform or view (steam, epic, favourites, new, hidden, ...)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only games with this tag")
	cmd.Flags().BoolVar(&installed, "installed", false, "Only installed games")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	_ = cmd.RegisterFlagCompletionFunc("platform", completePlatforms)
	return cmd
}

func newPlatformsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "Show views and platforms with game counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			counts := s.store.Counts()

			if jsonOut {
				type entry struct {
					Key   string `json:"key"`
					Name  string `json:"name"`
					View  bool   `json:"view"`
					Count int    `json:"count"`
				}
				out := make([]entry, 0, len(counts))
				for _, c := range counts {
					out = append(out, entry{Key: c.Platform.Key(), Name: c.Platform.String(), View: c.Platform.IsView(), Count: c.Count})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			for _, c := range counts {
				name := c.Platform.String()
				if c.Platform.IsView() {
					name = color.YellowString("%-18s", name)
				} else {
					name = fmt.Sprintf("%-18s", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %4d  %s\n", name, c.Count, color.HiBlackString(c.Platform.Key()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// parseView accepts a platform or view key or name.
func parseView(s string) (catalog.Platform, error) {
	if strings.TrimSpace(s) == "" {
		return catalog.All, nil
	}
	p := catalog.ParsePlatform(s)
	if p == catalog.Unknown && !strings.EqualFold(strings.TrimSpace(s), catalog.Unknown.Key()) {
		return p, fmt.Errorf("unknown platform %q: %w", s, catalog.ErrMalformedInput)
	}
	return p, nil
}

func platformSuffix(view catalog.Platform, g *catalog.Game) string {
	if !view.IsView() {
		return ""
	}
	return " " + color.HiBlackString("(%s)", g.Platform())
}

func ratingSuffix(g *catalog.Game) string {
	if g.Rating() == 0 {
		return ""
	}
	return " " + color.YellowString(strings.Repeat("★", g.Rating()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
