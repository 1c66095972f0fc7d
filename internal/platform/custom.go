package platform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/util"
)

// Custom turns every file in the custom games directory into a game.
// Games added by hand live only in the library file and are not scanned.
type Custom struct {
	run Runner
}

// NewCustom returns the custom games handler.
func NewCustom(run Runner) *Custom { return &Custom{run: run} }

func (c *Custom) Platform() catalog.Platform { return catalog.Custom }

// Scan lists regular, non-hidden files in opts.CustomDir.
func (c *Custom) Scan(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if opts.CustomDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(opts.CustomDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading custom dir: %w", err)
	}

	var out []catalog.Record
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(opts.CustomDir, e.Name())
		sum := sha256.Sum256([]byte(path))
		out = append(out, catalog.Record{
			ID:        "custom_" + hex.EncodeToString(sum[:6]),
			Title:     CustomTitle(e.Name()),
			Launch:    path,
			Installed: true,
			Platform:  catalog.Custom.String(),
		})
	}
	return out, nil
}

// CustomTitle derives a display title from a file name: extension dropped,
// underscores read as spaces.
func CustomTitle(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	title = strings.ReplaceAll(title, "_", " ")
	return strings.TrimSpace(title)
}

// ImportCustomFile copies src into dir so the next scan picks it up, and
// returns the new path.
func ImportCustomFile(dir, src string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := util.CopyFile(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s is already in the custom games folder: %w", filepath.Base(src), fs.ErrExist)
		}
		return "", fmt.Errorf("importing %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// Launch runs executables directly and opens anything else with the
// desktop handler.
func (c *Custom) Launch(g *catalog.Game) error {
	if g.LaunchURL() != "" {
		return c.run.Open(g.LaunchURL())
	}
	info, err := os.Stat(g.Launch())
	if err != nil {
		return runCommandLine(c.run, g.Launch())
	}
	if info.Mode().Perm()&0111 != 0 {
		return c.run.Start(g.Launch())
	}
	return c.run.Open(g.Launch())
}

func (c *Custom) Install(*catalog.Game) error { return ErrUnsupported }

func (c *Custom) Uninstall(g *catalog.Game) error {
	if g.Uninstall() == "" {
		return ErrUnsupported
	}
	return runCommandLine(c.run, g.Uninstall())
}

func (c *Custom) IconURL(g *catalog.Game) string { return g.IconURL() }
func (c *Custom) OpenClient() error              { return ErrUnsupported }
