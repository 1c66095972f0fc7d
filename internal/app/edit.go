package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

// editGame resolves query, applies fn and saves the library.
func editGame(query string, fn func(s *session, g *catalog.Game) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	g, err := s.resolve(query)
	if err != nil {
		return err
	}
	if err := fn(s, g); err != nil {
		return err
	}
	return s.save()
}

func newFaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "fave <query>",
		Short:             "Toggle a game's favourite flag",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editGame(strings.Join(args, " "), func(s *session, g *catalog.Game) error {
				if s.store.ToggleFavourite(g, s.sort) {
					ok("%s added to favourites", g.Title())
				} else {
					ok("%s removed from favourites", g.Title())
				}
				return nil
			})
		},
	}
}

func newHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "hide <query>",
		Short:             "Toggle a game's hidden flag",
		Long:              "Hidden games only show in the hidden, favourites and new views.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editGame(strings.Join(args, " "), func(s *session, g *catalog.Game) error {
				if s.store.ToggleHidden(g, s.sort) {
					ok("%s hidden", g.Title())
				} else {
					ok("%s shown again", g.Title())
				}
				return nil
			})
		},
	}
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <query> <0-5>",
		Short: "Set a game's rating",
		Example: `  gamedock rate "Hollow Knight" 5
  gamedock rate hades 0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			last := args[len(args)-1]
			rating, err := strconv.Atoi(last)
			if err != nil {
				return fmt.Errorf("rating %q: %w", last, catalog.ErrMalformedInput)
			}
			return editGame(strings.Join(args[:len(args)-1], " "), func(s *session, g *catalog.Game) error {
				if !g.SetRating(rating) {
					return fmt.Errorf("rating must be %d-%d: %w", catalog.MinRating, catalog.MaxRating, catalog.ErrMalformedInput)
				}
				s.store.Sort(s.sort)
				ok("%s rated %d", g.Title(), g.Rating())
				return nil
			})
		},
	}
}

func newAliasCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "alias <query> [alias]",
		Short: "Show or change a game's alias",
		Long: `Aliases are short names matched by search and run. New games get
one generated from the title; --reset generates it again.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !reset {
				s, err := openSession()
				if err != nil {
					return err
				}
				g, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				fmt.Println(g.Alias())
				return nil
			}
			return editGame(args[0], func(s *session, g *catalog.Game) error {
				alias := catalog.GenerateAlias(g.Title(), cfg.Alias.MaxLength, s.store.Articles())
				if len(args) == 2 {
					alias = strings.ToLower(strings.TrimSpace(args[1]))
				}
				if alias == "" {
					return fmt.Errorf("empty alias: %w", catalog.ErrMalformedInput)
				}
				g.SetAlias(alias)
				ok("%s is now %s", g.Title(), color.CyanString(alias))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Regenerate the alias from the title")
	return cmd
}

func newTagsCmd() *cobra.Command {
	var clearTags bool

	cmd := &cobra.Command{
		Use:   "tags <query> [tag|tag|...]",
		Short: "Show or replace a game's tags",
		Example: `  gamedock tags hades
  gamedock tags hades "roguelike|action"
  gamedock tags hades --clear`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeTitles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !clearTags {
				s, err := openSession()
				if err != nil {
					return err
				}
				g, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				for _, t := range g.Tags() {
					fmt.Println(color.CyanString(t))
				}
				return nil
			}
			return editGame(args[0], func(s *session, g *catalog.Game) error {
				if clearTags {
					g.ClearTags()
					ok("%s has no tags", g.Title())
					return nil
				}
				g.ReplaceTags(args[1])
				ok("%s tagged %s", g.Title(), color.CyanString(strings.Join(g.Tags(), ", ")))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearTags, "clear", false, "Remove every tag")
	return cmd
}

func newSeenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seen",
		Short: "Clear the new flag on every game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			n := len(s.store.List(catalog.NewGames))
			s.store.ClearNew()
			if err := s.save(); err != nil {
				return err
			}
			ok("%d new game(s) marked seen", n)
			return nil
		},
	}
}
