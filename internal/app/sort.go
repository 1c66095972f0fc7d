package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/config"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "sort [alpha|date|frequency|rating]",
		Short:     "Show or change the sort method",
		Long:      "Without an argument, print the sort method. With one, save it to the config file and re-sort the library.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"alpha", "date", "frequency", "rating"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				opts, err := cfg.SortOptions()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), opts.Method)
				return nil
			}

			m, err := catalog.ParseSortMethod(args[0])
			if err != nil {
				return err
			}
			cfg.Sort.Method = m.String()
			if err := config.SaveTo(configPath(), cfg); err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			ok("Sorting by %s", m)
			return nil
		},
	}
}
