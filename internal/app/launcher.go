package app

import (
	"context"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
	"github.com/blackwell-systems/gamedock/internal/tui"
	"github.com/blackwell-systems/gamedock/internal/watch"
)

// runLauncher opens the interactive launcher with a fresh scan running and
// the library file and custom games folder watched for changes.
func runLauncher(ctx context.Context) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan watch.Event
	w, err := watch.New(log, watch.DefaultDelay, cfg.GamesPath(), cfg.Platforms.CustomDir)
	if err != nil {
		log.Warn("file watching disabled", "error", err)
	} else {
		changes = w.Events()
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Warn("watcher stopped", "error", err)
			}
		}()
	}

	return tui.Run(tui.Options{
		Store:      s.store,
		Sort:       s.sort,
		MaxResults: cfg.Search.MaxResults,
		Launch:     s.launch,
		OpenClient: s.openClient,
		Save: func(store *catalog.Store) error {
			s.store = store
			return s.save()
		},
		Scan: func(ctx context.Context) ([]*catalog.Game, []catalog.Platform, error) {
			batch, reports, err := s.scan(ctx)
			return batch, platform.Failed(reports), err
		},
		Reload:      s.reload,
		Changes:     changes,
		LibraryPath: cfg.GamesPath(),
		CustomDir:   cfg.Platforms.CustomDir,
		ScanOnStart: true,
		Logger:      log,
	})
}
