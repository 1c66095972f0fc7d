package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

type searchResult struct {
	Rank       int    `json:"rank"`
	Title      string `json:"title"`
	Platform   string `json:"platform"`
	Installed  bool   `json:"installed"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

func newSearchCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search games by title and alias",
		Long: `Rank the library against a query. An exact title or alias scores
highest, then title and alias prefixes, subtitles and words.

Results are saved so the next 'gamedock run #n' can pick one.

Examples:
  gamedock search zelda
  gamedock search "elder scrolls" --max 5
  gamedock run '#2'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			s, err := openSession()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max") {
				limit = cfg.Search.MaxResults
			}

			hits := s.store.Search(query, limit).Sorted()
			if err := s.mgr.SaveSearch(hits); err != nil {
				log.Warn("saving search", "error", err)
			}

			if jsonOut {
				out := make([]searchResult, 0, len(hits))
				for i, h := range hits {
					out = append(out, searchResult{
						Rank:       i + 1,
						Title:      h.Title,
						Platform:   h.Game.Platform().String(),
						Installed:  h.Game.Installed(),
						Confidence: int(h.Confidence),
						Reason:     h.Confidence.String(),
					})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			if len(hits) == 0 {
				return s.notFound(query)
			}
			printMatches(hits)
			fmt.Printf("\n%d result(s)\n", len(hits))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "max", "n", 0, "Stop after this many matches (0 = no limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printMatches(hits catalog.Matches) {
	for i, h := range hits {
		title := h.Title
		if !h.Game.Installed() {
			title = color.HiBlackString("*" + title)
		}
		fmt.Printf("  %s  %-40s %s  %s\n",
			color.CyanString("#%-2d", i+1),
			title,
			color.HiBlackString("%-14s", h.Game.Platform()),
			color.HiBlackString(h.Confidence.String()),
		)
	}
}
