package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

const legendaryBin = "legendary"

// Epic reads the library kept by the legendary command-line client.
type Epic struct {
	run Runner
}

// NewEpic returns the Epic handler.
func NewEpic(run Runner) *Epic { return &Epic{run: run} }

func (e *Epic) Platform() catalog.Platform { return catalog.Epic }

type legendaryInstall struct {
	AppName     string `json:"app_name"`
	Title       string `json:"title"`
	InstallPath string `json:"install_path"`
	Executable  string `json:"executable"`
	IsDLC       bool   `json:"is_dlc"`
}

type legendaryMeta struct {
	AppName  string `json:"app_name"`
	AppTitle string `json:"app_title"`
	Metadata struct {
		MainGameItem *json.RawMessage `json:"mainGameItem"`
		KeyImages    []struct {
			Type string `json:"type"`
			URL  string `json:"url"`
		} `json:"keyImages"`
	} `json:"metadata"`
}

// Scan lists installed games from installed.json and owned games from the
// metadata cache.
func (e *Epic) Scan(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if opts.LegendaryDir == "" {
		return nil, nil
	}
	installed, err := readLegendaryInstalled(filepath.Join(opts.LegendaryDir, "installed.json"))
	if err != nil {
		return nil, err
	}

	var out []catalog.Record
	seen := map[string]bool{}
	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		inst := installed[name]
		if inst.IsDLC {
			continue
		}
		out = append(out, legendaryRecord(inst.AppName, inst.Title, true))
		seen[inst.AppName] = true
	}

	metas, _ := filepath.Glob(filepath.Join(opts.LegendaryDir, "metadata", "*.json"))
	sort.Strings(metas)
	for _, path := range metas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		meta, err := readLegendaryMeta(path)
		if err != nil {
			opts.logger().Warn("skipping legendary metadata", "path", path, "error", err)
			continue
		}
		if meta.AppName == "" || seen[meta.AppName] || meta.Metadata.MainGameItem != nil {
			continue
		}
		rec := legendaryRecord(meta.AppName, meta.AppTitle, false)
		rec.IconURL = meta.boxArt()
		out = append(out, rec)
		seen[meta.AppName] = true
	}
	return out, nil
}

func legendaryRecord(app, title string, installed bool) catalog.Record {
	if title == "" {
		title = app
	}
	return catalog.Record{
		ID:        app,
		Title:     title,
		Launch:    legendaryBin + " launch " + app,
		Uninstall: legendaryBin + " uninstall " + app,
		Installed: installed,
		Platform:  catalog.Epic.String(),
	}
}

func readLegendaryInstalled(path string) (map[string]legendaryInstall, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading legendary installed.json: %w", err)
	}
	var installed map[string]legendaryInstall
	if err := json.Unmarshal(data, &installed); err != nil {
		return nil, fmt.Errorf("parsing legendary installed.json: %w", err)
	}
	for name, inst := range installed {
		if inst.AppName == "" {
			inst.AppName = name
			installed[name] = inst
		}
	}
	return installed, nil
}

func readLegendaryMeta(path string) (legendaryMeta, error) {
	var meta legendaryMeta
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

func (m legendaryMeta) boxArt() string {
	for _, want := range []string{"DieselGameBoxTall", "DieselGameBox", "Thumbnail"} {
		for _, img := range m.Metadata.KeyImages {
			if img.Type == want {
				return img.URL
			}
		}
	}
	return ""
}

func (e *Epic) Launch(g *catalog.Game) error  { return e.run.Start(legendaryBin, "launch", g.ID()) }
func (e *Epic) Install(g *catalog.Game) error { return e.run.Start(legendaryBin, "install", g.ID(), "-y") }
func (e *Epic) Uninstall(g *catalog.Game) error {
	return e.run.Start(legendaryBin, "uninstall", g.ID(), "-y")
}
func (e *Epic) IconURL(g *catalog.Game) string { return g.IconURL() }
func (e *Epic) OpenClient() error              { return ErrUnsupported }
