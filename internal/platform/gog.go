package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

const (
	heroicBin    = "heroic"
	heroicLaunch = "heroic://launch/gog/"
)

// GOG reads the GOG library kept by the Heroic launcher.
type GOG struct {
	run Runner
}

// NewGOG returns the GOG handler.
func NewGOG(run Runner) *GOG { return &GOG{run: run} }

func (g *GOG) Platform() catalog.Platform { return catalog.GOG }

type heroicInstalled struct {
	Installed []struct {
		AppName     string `json:"appName"`
		InstallPath string `json:"install_path"`
	} `json:"installed"`
}

type heroicLibrary struct {
	Games []struct {
		AppName  string `json:"app_name"`
		Title    string `json:"title"`
		ArtCover string `json:"art_cover"`
	} `json:"games"`
}

// Scan joins Heroic's owned-games cache with its install list.
func (g *GOG) Scan(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if opts.HeroicDir == "" {
		return nil, nil
	}
	store := filepath.Join(opts.HeroicDir, "gog_store")

	var inst heroicInstalled
	if err := readJSON(filepath.Join(store, "installed.json"), &inst); err != nil {
		return nil, err
	}
	installed := map[string]bool{}
	for _, i := range inst.Installed {
		installed[i.AppName] = true
	}

	var lib heroicLibrary
	if err := readJSON(filepath.Join(store, "library.json"), &lib); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []catalog.Record
	for _, game := range lib.Games {
		if game.AppName == "" || game.Title == "" {
			continue
		}
		out = append(out, catalog.Record{
			ID:        game.AppName,
			Title:     game.Title,
			LaunchURL: heroicLaunch + game.AppName,
			IconURL:   game.ArtCover,
			Installed: installed[game.AppName],
			Platform:  catalog.GOG.String(),
		})
	}
	return out, nil
}

// readJSON decodes path into v. A missing file leaves v untouched.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (g *GOG) Launch(game *catalog.Game) error  { return g.run.Open(heroicLaunch + game.ID()) }
func (g *GOG) Install(game *catalog.Game) error { return g.run.Open(heroicLaunch + game.ID()) }
func (g *GOG) Uninstall(*catalog.Game) error    { return ErrUnsupported }
func (g *GOG) IconURL(game *catalog.Game) string {
	return game.IconURL()
}
func (g *GOG) OpenClient() error { return g.run.Start(heroicBin) }
