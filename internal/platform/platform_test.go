package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
)

// fakeRunner records what would have been started.
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

// stubHandler returns canned records.
type stubHandler struct {
	p       catalog.Platform
	records []catalog.Record
	err     error
	run     *fakeRunner
}

func (s *stubHandler) Platform() catalog.Platform { return s.p }
func (s *stubHandler) Scan(context.Context, platform.Options) ([]catalog.Record, error) {
	return s.records, s.err
}
func (s *stubHandler) Launch(g *catalog.Game) error  { return s.run.Open("launch:" + g.ID()) }
func (s *stubHandler) Install(g *catalog.Game) error { return s.run.Open("install:" + g.ID()) }
func (s *stubHandler) Uninstall(*catalog.Game) error { return platform.ErrUnsupported }
func (s *stubHandler) IconURL(*catalog.Game) string  { return "" }
func (s *stubHandler) OpenClient() error             { return platform.ErrUnsupported }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	run := &fakeRunner{}
	a := &stubHandler{p: catalog.Steam, run: run}
	b := &stubHandler{p: catalog.Itch, run: run}
	c := &stubHandler{p: catalog.Steam, run: run}
	reg := platform.NewRegistry(a, b, c)

	hs := reg.Handlers()
	require.Len(t, hs, 2)
	assert.Same(t, c, hs[0])
	assert.Same(t, b, hs[1])

	_, ok := reg.Handler(catalog.Oculus)
	assert.False(t, ok)
}

func TestDefault_HasBuiltins(t *testing.T) {
	reg := platform.Default(&fakeRunner{})
	for _, p := range []catalog.Platform{catalog.Steam, catalog.Epic, catalog.GOG, catalog.Itch, catalog.Custom} {
		_, ok := reg.Handler(p)
		assert.True(t, ok, p.String())
	}
}

func TestScan_CombinesAndSkipsFailures(t *testing.T) {
	run := &fakeRunner{}
	reg := platform.NewRegistry(
		&stubHandler{p: catalog.Steam, run: run, records: []catalog.Record{
			{ID: "1", Title: "The Elder Scrolls V: Skyrim", Platform: "Steam", Installed: true},
			{ID: "2", Title: "", Platform: "Steam"},
		}},
		&stubHandler{p: catalog.Epic, run: run, err: errors.New("boom")},
		&stubHandler{p: catalog.Itch, run: run, records: []catalog.Record{
			{ID: "3", Title: "Celeste", Alias: "cel", Platform: "itch"},
		}},
	)

	batch, reports, err := platform.Scan(context.Background(), reg, platform.ScanConfig{AliasLength: 20})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "elderscrollsvskyrim", batch[0].Alias())
	assert.Equal(t, "cel", batch[1].Alias(), "scanner alias is kept")
	assert.Equal(t, catalog.Itch, batch[1].Platform())

	require.Len(t, reports, 3)
	assert.Error(t, reports[1].Err)
	assert.Equal(t, 2, reports[0].Found)
}

func TestScan_FailedPlatformKeepsLibrary(t *testing.T) {
	run := &fakeRunner{}
	store := catalog.New()
	portal := store.AddRecord(catalog.Record{ID: "400", Title: "Portal", Platform: "Steam", Installed: true, Rating: 5})
	store.ToggleFavourite(portal, catalog.SortOptions{})

	reg := platform.NewRegistry(
		&stubHandler{p: catalog.Steam, run: run, err: errors.New("libraryfolders.vdf: permission denied")},
		&stubHandler{p: catalog.Itch, run: run, records: []catalog.Record{{ID: "3", Title: "Celeste", Platform: "itch"}}},
	)
	batch, reports, err := platform.Scan(context.Background(), reg, platform.ScanConfig{})
	require.NoError(t, err)
	failed := platform.Failed(reports)
	assert.Equal(t, []catalog.Platform{catalog.Steam}, failed)

	res := store.Merge(batch, failed...)
	assert.Empty(t, res.Removed)
	assert.Same(t, portal, store.Find("Portal"))
	assert.True(t, portal.Favourite())
	assert.Equal(t, 5, portal.Rating())
}

func TestFailed_NoErrors(t *testing.T) {
	assert.Empty(t, platform.Failed([]platform.Report{{Platform: catalog.Steam}, {Platform: catalog.Epic}}))
	assert.Empty(t, platform.Failed(nil))
}

func TestScan_EnabledFilter(t *testing.T) {
	run := &fakeRunner{}
	reg := platform.NewRegistry(
		&stubHandler{p: catalog.Steam, run: run, records: []catalog.Record{{Title: "Portal", Platform: "Steam"}}},
		&stubHandler{p: catalog.Itch, run: run, records: []catalog.Record{{Title: "Celeste", Platform: "itch"}}},
	)
	batch, _, err := platform.Scan(context.Background(), reg, platform.ScanConfig{
		Enabled: func(key string) bool { return key == "itch" },
	})
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Celeste", batch[0].Title())
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reg := platform.NewRegistry(&stubHandler{p: catalog.Steam, run: &fakeRunner{}})
	_, _, err := platform.Scan(ctx, reg, platform.ScanConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLaunch_Routing(t *testing.T) {
	run := &fakeRunner{}
	reg := platform.NewRegistry(&stubHandler{p: catalog.Steam, run: run})

	installed := catalog.NewGame(catalog.Record{ID: "10", Title: "A", Platform: "Steam", Installed: true})
	missing := catalog.NewGame(catalog.Record{ID: "11", Title: "B", Platform: "Steam"})
	require.NoError(t, platform.Launch(reg, run, installed))
	require.NoError(t, platform.Launch(reg, run, missing))
	assert.Equal(t, []string{"launch:10", "install:11"}, run.opened)

	noHandler := catalog.NewGame(catalog.Record{Title: "C", Platform: "Oculus", Installed: true, Launch: "runme --fast"})
	require.NoError(t, platform.Launch(reg, run, noHandler))
	assert.Equal(t, [][]string{{"runme", "--fast"}}, run.started)

	url := catalog.NewGame(catalog.Record{Title: "D", Platform: "Riot", Installed: true, LaunchURL: "riotclient://launch"})
	require.NoError(t, platform.Launch(reg, run, url))
	assert.Equal(t, "riotclient://launch", run.opened[len(run.opened)-1])

	gone := catalog.NewGame(catalog.Record{Title: "E", Platform: "Oculus"})
	assert.ErrorIs(t, platform.Launch(reg, run, gone), platform.ErrNotInstalled)

	empty := catalog.NewGame(catalog.Record{Title: "F", Platform: "Oculus", Installed: true})
	assert.ErrorIs(t, platform.Launch(reg, run, empty), platform.ErrNoLaunchCommand)
}
