package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/config"
)

type fakeRunner struct {
	opened  []string
	started [][]string
}

func (f *fakeRunner) Open(target string) error {
	f.opened = append(f.opened, target)
	return nil
}

func (f *fakeRunner) Start(name string, args ...string) error {
	f.started = append(f.started, append([]string{name}, args...))
	return nil
}

var libraryFixture = []catalog.Record{
	{ID: "620", Title: "Portal 2", Platform: "Steam", Installed: true, Alias: "portal2"},
	{ID: "367520", Title: "Hollow Knight", Platform: "Steam", Installed: true, Alias: "hk"},
	{ID: "1145360", Title: "Hades", Platform: "Steam", Installed: false},
	{ID: "doom1", Title: "Doom Eternal", Platform: "Steam", Installed: true},
	{ID: "doom2", Title: "Doom 64", Platform: "Steam", Installed: true},
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Library:  config.LibraryConfig{DataDir: dir, GamesFile: "games.yml", SearchFile: "search.yml"},
		Sort:     config.SortConfig{Method: "alpha", FavouritesFirst: true, InstalledFirst: true, IgnoreArticle: true},
		Alias:    config.AliasConfig{MaxLength: 12},
		Articles: []string{"The", "A", "An"},
		Platforms: config.PlatformsConfig{
			Enabled:   []string{"custom"},
			CustomDir: filepath.Join(dir, "custom"),
		},
	}
}

// setup points the package at a temp library holding records and swaps in
// a fake runner.
func setup(t *testing.T, records ...catalog.Record) (*session, *fakeRunner) {
	t.Helper()
	oldCfg, oldRunner := cfg, runner
	t.Cleanup(func() { cfg, runner = oldCfg, oldRunner })

	cfg = testConfig(t.TempDir())
	fake := &fakeRunner{}
	runner = fake

	require.NoError(t, catalog.Save(cfg.GamesPath(), records))
	s, err := openSession()
	require.NoError(t, err)
	return s, fake
}

func TestHitRef(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		isOK bool
	}{
		{"#2", 2, true},
		{"#0", 0, true},
		{"#x", 0, false},
		{"#", 0, false},
		{"hades", 0, false},
		{"2", 0, false},
	}
	for _, tt := range tests {
		n, found := hitRef(tt.in)
		assert.Equal(t, tt.isOK, found, tt.in)
		assert.Equal(t, tt.n, n, tt.in)
	}
}

func TestResolve_ExactAndBest(t *testing.T) {
	s, _ := setup(t, libraryFixture...)

	g, err := s.resolve("Hades")
	require.NoError(t, err)
	assert.Equal(t, "Hades", g.Title())

	g, err = s.resolve("hk")
	require.NoError(t, err)
	assert.Equal(t, "Hollow Knight", g.Title())

	g, err = s.resolve("  portal ")
	require.NoError(t, err)
	assert.Equal(t, "Portal 2", g.Title())
}

func TestResolve_Ambiguous(t *testing.T) {
	s, _ := setup(t, libraryFixture...)

	_, err := s.resolve("doom")
	require.ErrorIs(t, err, errAmbiguous)

	hits, err := s.mgr.LastSearch()
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	g, err := s.resolve("#2")
	require.NoError(t, err)
	assert.Equal(t, hits[1].Title, g.Title())
}

func TestResolve_Errors(t *testing.T) {
	s, _ := setup(t, libraryFixture...)

	_, err := s.resolve("zzzz")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = s.resolve("   ")
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)

	_, err = s.resolve("#1")
	assert.ErrorIs(t, err, catalog.ErrIndexOutOfRange, "no saved search yet")

	require.NoError(t, s.mgr.SaveSearch(catalog.Matches{{Title: "Gone Home", Confidence: catalog.ExactTitle}}))
	_, err = s.resolve("#1")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestLaunch_RecordsAndSaves(t *testing.T) {
	s, fake := setup(t, libraryFixture...)

	g := s.store.Find("Portal 2")
	require.NoError(t, s.launch(g))
	assert.Equal(t, []string{"steam://rungameid/620"}, fake.opened)
	assert.Equal(t, uint(1), g.Runs())
	assert.False(t, g.LastRun().IsZero())

	reloaded, err := s.mgr.Load()
	require.NoError(t, err)
	saved := reloaded.Find("Portal 2")
	require.NotNil(t, saved)
	assert.Equal(t, uint(1), saved.Runs())
	assert.Greater(t, saved.Frequency(), 0.0)
}

func TestLaunch_NotInstalledAsksForInstall(t *testing.T) {
	s, fake := setup(t, libraryFixture...)

	g := s.store.Find("Hades")
	require.NoError(t, s.launch(g))
	assert.Equal(t, []string{"steam://install/1145360"}, fake.opened)
	assert.Zero(t, g.Runs())
}

func TestAddCustom(t *testing.T) {
	s, _ := setup(t, libraryFixture...)

	g, err := addCustom(s, addParams{title: "Doom (GZDoom)", launch: "gzdoom -iwad doom2.wad", tags: "fps|classic"})
	require.NoError(t, err)
	assert.Equal(t, catalog.Custom, g.Platform())
	assert.True(t, g.Installed())
	assert.True(t, strings.HasPrefix(g.ID(), "custom_"))
	assert.NotEmpty(t, g.Alias())
	assert.Equal(t, []string{"fps", "classic"}, g.Tags())
	assert.Contains(t, s.store.List(catalog.Custom), g)

	_, err = addCustom(s, addParams{title: "Doom (GZDoom)", launch: "gzdoom"})
	assert.Error(t, err, "duplicate title")

	_, err = addCustom(s, addParams{title: "No Launch"})
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)

	_, err = addCustom(s, addParams{launch: "true"})
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)
}

func TestAddCustom_File(t *testing.T) {
	s, _ := setup(t)

	src := filepath.Join(t.TempDir(), "celeste_classic.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0755))

	g, err := addCustom(s, addParams{file: src})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Platforms.CustomDir, "celeste_classic.sh"), g.Launch())
	assert.FileExists(t, g.Launch())
	assert.NotEmpty(t, g.Title())
}

func TestParseView(t *testing.T) {
	p, err := parseView("")
	require.NoError(t, err)
	assert.Equal(t, catalog.All, p)

	p, err = parseView("steam")
	require.NoError(t, err)
	assert.Equal(t, catalog.Steam, p)

	p, err = parseView("Not installed")
	require.NoError(t, err)
	assert.Equal(t, catalog.NotInstalled, p)

	_, err = parseView("dreamcast")
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)
}

// execute runs the command tree against a config file in a temp dir.
func execute(t *testing.T, args ...string) (string, *fakeRunner, error) {
	t.Helper()
	oldCfg, oldRunner := cfg, runner
	t.Cleanup(func() { cfg, runner = oldCfg, oldRunner })

	fake := &fakeRunner{}
	runner = fake

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), fake, err
}

func writeConfig(t *testing.T, records ...catalog.Record) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	c := testConfig(filepath.Join(dir, "data"))
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, config.SaveTo(path, c))
	require.NoError(t, catalog.Save(c.GamesPath(), records))
	return path, c
}

func TestCommand_RunUpdatesLibrary(t *testing.T) {
	path, c := writeConfig(t, libraryFixture...)

	_, fake, err := execute(t, "--config", path, "--no-color", "run", "hollow", "knight")
	require.NoError(t, err)
	assert.Equal(t, []string{"steam://rungameid/367520"}, fake.opened)

	records, err := catalog.Load(c.GamesPath())
	require.NoError(t, err)
	for _, r := range records {
		if r.Title == "Hollow Knight" {
			assert.Equal(t, uint(1), r.Runs)
			return
		}
	}
	t.Fatal("Hollow Knight missing after run")
}

func TestCommand_RateAndFave(t *testing.T) {
	path, c := writeConfig(t, libraryFixture...)

	_, _, err := execute(t, "--config", path, "--no-color", "rate", "Portal 2", "4")
	require.NoError(t, err)
	_, _, err = execute(t, "--config", path, "--no-color", "fave", "hk")
	require.NoError(t, err)
	_, _, err = execute(t, "--config", path, "--no-color", "rate", "Portal 2", "9")
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)

	s := catalog.New()
	records, err := catalog.Load(c.GamesPath())
	require.NoError(t, err)
	s.Load(records)
	assert.Equal(t, 4, s.Find("Portal 2").Rating())
	assert.True(t, s.Find("Hollow Knight").Favourite())
}

func TestCommand_SortSavesConfig(t *testing.T) {
	path, _ := writeConfig(t, libraryFixture...)

	_, _, err := execute(t, "--config", path, "--no-color", "sort", "freq")
	require.NoError(t, err)

	out, _, err := execute(t, "--config", path, "--no-color", "sort")
	require.NoError(t, err)
	assert.Equal(t, "frequency\n", out)

	_, _, err = execute(t, "--config", path, "--no-color", "sort", "shuffle")
	assert.ErrorIs(t, err, catalog.ErrMalformedInput)
}

func TestCommand_Version(t *testing.T) {
	path, _ := writeConfig(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, _, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}
