package app

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
)

func newScanCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan every platform and update the library",
		Long: `Ask every enabled platform for its games and reconcile the library:
new games are added and marked new, games that disappeared are removed
(custom games are kept), and installed state is refreshed.

A platform that fails to scan is reported and its games are kept as they
were.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}

			batch, reports, err := s.scan(cmd.Context())
			if err != nil {
				return err
			}
			if !quiet {
				for _, r := range reports {
					if r.Err != nil {
						warn("%s: %v", r.Platform, r.Err)
						continue
					}
					fmt.Printf("  %-18s %4d  %s\n", r.Platform, r.Found,
						color.HiBlackString(r.Took.Round(time.Millisecond).String()))
				}
			}

			res := s.store.Merge(batch, platform.Failed(reports)...)
			s.store.Sort(s.sort)
			if err := s.save(); err != nil {
				return err
			}

			if !quiet {
				printChanges("+", res.Added)
				printChanges("-", res.Removed)
			}
			ok("%d games: %d new, %d removed", s.store.Len(), len(res.Added), len(res.Removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")
	return cmd
}

func printChanges(mark string, games []*catalog.Game) {
	c := color.GreenString
	if mark == "-" {
		c = color.RedString
	}
	for _, g := range games {
		fmt.Printf("  %s %s %s\n", c(mark), g.Title(), color.HiBlackString("(%s)", g.Platform()))
	}
}
