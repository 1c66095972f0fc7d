package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/config"
	"github.com/blackwell-systems/gamedock/internal/util"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the data folders",
		Long: `Write the effective configuration (defaults, plus any GAMEDOCK_*
environment overrides) to the config file so it can be edited, and create
the data and custom games folders.

Run 'gamedock scan' afterwards to fill the library.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTo(path, cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", path)

			for _, dir := range []string{cfg.Library.DataDir, cfg.Platforms.CustomDir} {
				if dir == "" {
					continue
				}
				if err := util.EnsureDir(dir); err != nil {
					return err
				}
				ok("Created %s", dir)
			}

			fmt.Println()
			fmt.Println("Next: " + color.CyanString("gamedock scan"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
