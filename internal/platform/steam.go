package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

const (
	steamProtocol  = "steam://"
	steamRun       = steamProtocol + "rungameid/"
	steamInstall   = steamProtocol + "install/"
	steamUninstall = steamProtocol + "uninstall/"
	steamOpen      = steamProtocol + "open/games"
	steamHeaderURL = "https://cdn.cloudflare.steamstatic.com/steam/apps/%s/header.jpg"

	// StateFlags bits.
	steamUpdateRequired = 2
	steamFullyInstalled = 4
	steamUpdateStarted  = 1024
)

// Runtimes and redistributables that show up as apps but are not games.
var steamSkip = map[string]bool{
	"228980":  true, // Steamworks Common Redistributables
	"1070560": true, // Steam Linux Runtime
	"1391110": true, // Steam Linux Runtime - soldier
	"1628350": true, // Steam Linux Runtime - sniper
	"1493710": true, // Proton Experimental
}

// Steam scans local Steam libraries.
type Steam struct {
	run Runner
}

// NewSteam returns the Steam handler.
func NewSteam(run Runner) *Steam { return &Steam{run: run} }

func (s *Steam) Platform() catalog.Platform { return catalog.Steam }

// Scan reads every appmanifest in every library listed in
// libraryfolders.vdf.
func (s *Steam) Scan(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if opts.SteamRoot == "" {
		return nil, nil
	}
	steamapps := filepath.Join(opts.SteamRoot, "steamapps")
	if _, err := os.Stat(steamapps); err != nil {
		opts.logger().Debug("steam not found", "path", steamapps)
		return nil, nil
	}

	libs, err := steamLibraries(opts.SteamRoot)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []catalog.Record
	for _, lib := range libs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		manifests, _ := filepath.Glob(filepath.Join(lib, "steamapps", "appmanifest_*.acf"))
		for _, path := range manifests {
			rec, err := readAppManifest(path)
			if err != nil {
				opts.logger().Warn("skipping steam manifest", "path", path, "error", err)
				continue
			}
			if rec.ID == "" || steamSkip[rec.ID] || seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			out = append(out, rec)
		}
	}
	return out, nil
}

// steamLibraries returns the root library plus every extra library folder.
func steamLibraries(root string) ([]string, error) {
	libs := []string{root}
	f, err := os.Open(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		if os.IsNotExist(err) {
			return libs, nil
		}
		return nil, fmt.Errorf("opening libraryfolders.vdf: %w", err)
	}
	defer f.Close()

	kv, err := parseKV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders.vdf: %w", err)
	}
	folders := kv.Child("libraryfolders")
	if folders == nil {
		return libs, nil
	}
	for _, key := range folders.Keys() {
		if _, err := strconv.Atoi(key); err != nil {
			continue
		}
		path := folders.Child(key).String("path")
		if path == "" || filepath.Clean(path) == filepath.Clean(root) {
			continue
		}
		libs = append(libs, path)
	}
	// Old format: "1" "/path/to/library"
	for key, path := range folders.values {
		if _, err := strconv.Atoi(key); err == nil && path != "" && filepath.Clean(path) != filepath.Clean(root) {
			libs = append(libs, path)
		}
	}
	return libs, nil
}

func readAppManifest(path string) (catalog.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Record{}, err
	}
	defer f.Close()

	kv, err := parseKV(f)
	if err != nil {
		return catalog.Record{}, err
	}
	app := kv.Child("AppState")
	if app == nil {
		return catalog.Record{}, fmt.Errorf("no AppState block")
	}
	id := app.String("appid")
	title := strings.TrimSpace(app.String("name"))
	if title == "" {
		title = app.String("installdir")
	}
	flags, _ := strconv.Atoi(app.String("StateFlags"))
	size, _ := strconv.ParseInt(app.String("SizeOnDisk"), 10, 64)

	return catalog.Record{
		ID:        id,
		Title:     title,
		Launch:    steamRun + id,
		LaunchURL: steamRun + id,
		IconURL:   fmt.Sprintf(steamHeaderURL, id),
		Uninstall: steamUninstall + id,
		Installed: steamInstalled(flags, size),
		Platform:  catalog.Steam.String(),
	}, nil
}

// steamInstalled reports whether a playable copy is on disk. A pending or
// running update clears the fully installed bit but leaves the old files in
// place; a first download has nothing on disk yet.
func steamInstalled(flags int, sizeOnDisk int64) bool {
	if flags&steamFullyInstalled != 0 {
		return true
	}
	return flags&(steamUpdateRequired|steamUpdateStarted) != 0 && sizeOnDisk > 0
}

func (s *Steam) Launch(g *catalog.Game) error    { return s.run.Open(steamRun + g.ID()) }
func (s *Steam) Install(g *catalog.Game) error   { return s.run.Open(steamInstall + g.ID()) }
func (s *Steam) Uninstall(g *catalog.Game) error { return s.run.Open(steamUninstall + g.ID()) }
func (s *Steam) OpenClient() error               { return s.run.Open(steamOpen) }

func (s *Steam) IconURL(g *catalog.Game) string {
	if g.IconURL() != "" {
		return g.IconURL()
	}
	return fmt.Sprintf(steamHeaderURL, g.ID())
}
