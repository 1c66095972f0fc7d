package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
	"github.com/blackwell-systems/gamedock/internal/util"
)

type addParams struct {
	title     string
	launch    string
	url       string
	icon      string
	uninstall string
	alias     string
	tags      string
	file      string
}

func newAddCmd() *cobra.Command {
	var p addParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom game",
		Long: `Add a game that no store knows about. Custom games are never removed
by a scan.

With --file the program is copied into the custom games folder; the
title defaults to the file name.

Examples:
  gamedock add --title "Doom (GZDoom)" --launch "gzdoom -iwad doom2.wad"
  gamedock add --title "Lichess" --url https://lichess.org
  gamedock add --file ~/Downloads/celeste.sh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			g, err := addCustom(s, p)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			ok("Added %s (alias %s)", g.Title(), g.Alias())
			return nil
		},
	}

	cmd.Flags().StringVar(&p.title, "title", "", "Game title")
	cmd.Flags().StringVar(&p.launch, "launch", "", "Command line or path that starts the game")
	cmd.Flags().StringVar(&p.url, "url", "", "URL that starts the game")
	cmd.Flags().StringVar(&p.icon, "icon", "", "Icon path or URL")
	cmd.Flags().StringVar(&p.uninstall, "uninstall", "", "Command line that uninstalls the game")
	cmd.Flags().StringVar(&p.alias, "alias", "", "Alias (generated from the title by default)")
	cmd.Flags().StringVar(&p.tags, "tags", "", "Tags separated by '|'")
	cmd.Flags().StringVar(&p.file, "file", "", "Copy this program into the custom games folder")
	return cmd
}

// addCustom builds a custom game from p and adds it to the store.
func addCustom(s *session, p addParams) (*catalog.Game, error) {
	if p.file != "" {
		if cfg.Platforms.CustomDir == "" {
			return nil, fmt.Errorf("--file needs platforms.custom_dir to be set")
		}
		dst, err := platform.ImportCustomFile(cfg.Platforms.CustomDir, p.file)
		if err != nil {
			return nil, err
		}
		p.launch = dst
		if p.title == "" {
			p.title = platform.CustomTitle(filepath.Base(dst))
		}
	}

	p.title = strings.TrimSpace(p.title)
	if p.title == "" {
		return nil, fmt.Errorf("--title is required: %w", catalog.ErrMalformedInput)
	}
	if p.launch == "" && p.url == "" {
		return nil, fmt.Errorf("--launch, --url or --file is required: %w", catalog.ErrMalformedInput)
	}
	if p.alias == "" {
		p.alias = catalog.GenerateAlias(p.title, cfg.Alias.MaxLength, s.store.Articles())
	}

	g := s.store.AddRecord(catalog.Record{
		ID:        "custom_" + uuid.NewString(),
		Title:     p.title,
		Launch:    p.launch,
		LaunchURL: p.url,
		Icon:      p.icon,
		Uninstall: p.uninstall,
		Installed: true,
		Alias:     strings.ToLower(p.alias),
		Platform:  catalog.Custom.String(),
	})
	if g == nil {
		return nil, fmt.Errorf("%q is already in the library", p.title)
	}
	if p.tags != "" {
		g.ReplaceTags(p.tags)
	}
	s.store.Sort(s.sort)
	return g, nil
}

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "remove <query>",
		Short:             "Remove a game from the library",
		Long:              "Remove a game from the library. Store games come back on the next scan; remove custom games this way.",
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

			if !yes && util.IsTTY() && !flagNoInteractive {
				fmt.Printf("Remove %q from the library? (y/N): ", g.Title())
				answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					warn("Cancelled")
					return nil
				}
			}

			s.store.Remove(g)
			if err := s.save(); err != nil {
				return err
			}
			ok("Removed %s", g.Title())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
