package platform_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
)

func TestCustomTitle(t *testing.T) {
	assert.Equal(t, "Doom II", platform.CustomTitle("Doom_II.sh"))
	assert.Equal(t, "nethack", platform.CustomTitle("nethack"))
	assert.Equal(t, "Quake", platform.CustomTitle(" Quake .desktop"))
}

func TestCustomScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Doom_II.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(dir, ".hidden"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	h := platform.NewCustom(&fakeRunner{})
	recs, err := h.Scan(context.Background(), platform.Options{CustomDir: dir})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "Doom II", r.Title)
	assert.True(t, r.Installed)
	assert.Equal(t, filepath.Join(dir, "Doom_II.sh"), r.Launch)
	sum := sha256.Sum256([]byte(r.Launch))
	assert.Equal(t, "custom_"+hex.EncodeToString(sum[:6]), r.ID, "id hashes the file path")

	again, err := h.Scan(context.Background(), platform.Options{CustomDir: dir})
	require.NoError(t, err)
	assert.Equal(t, r.ID, again[0].ID, "ids are stable across scans")
}

func TestCustomScan_MissingDir(t *testing.T) {
	recs, err := platform.NewCustom(&fakeRunner{}).Scan(context.Background(), platform.Options{
		CustomDir: filepath.Join(t.TempDir(), "nope"),
	})
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestImportCustomFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "quake.sh")
	writeFile(t, src, "#!/bin/sh\necho quake\n")
	require.NoError(t, os.Chmod(src, 0755))
	dir := filepath.Join(t.TempDir(), "custom")

	dst, err := platform.ImportCustomFile(dir, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quake.sh"), dst)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "executable bit is copied")

	_, err = platform.ImportCustomFile(dir, src)
	assert.ErrorIs(t, err, fs.ErrExist, "existing files are not overwritten")
	assert.Contains(t, err.Error(), "already in the custom games folder")
}

func TestCustomLaunch(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	writeFile(t, script, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0755))
	doc := filepath.Join(dir, "manual.pdf")
	writeFile(t, doc, "%PDF")

	run := &fakeRunner{}
	h := platform.NewCustom(run)
	require.NoError(t, h.Launch(catalog.NewGame(catalog.Record{Title: "Run", Launch: script, Platform: "Custom games"})))
	require.NoError(t, h.Launch(catalog.NewGame(catalog.Record{Title: "Manual", Launch: doc, Platform: "Custom games"})))
	require.NoError(t, h.Launch(catalog.NewGame(catalog.Record{Title: "Web", LaunchURL: "https://example.com/play", Platform: "Custom games"})))

	assert.Equal(t, [][]string{{script}}, run.started)
	assert.Equal(t, []string{doc, "https://example.com/play"}, run.opened)

	assert.ErrorIs(t, h.Uninstall(catalog.NewGame(catalog.Record{Title: "X"})), platform.ErrUnsupported)
}
