package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/platform"
)

// errAmbiguous is returned when a query's best confidence is shared by
// more than one game.
var errAmbiguous = errors.New("query matches several games equally well")

// session is one command's view of the library: the store loaded from
// disk, its sort options and the platform handlers.
type session struct {
	mgr   *catalog.Manager
	store *catalog.Store
	sort  catalog.SortOptions
	reg   *platform.Registry
}

func openSession() (*session, error) {
	opts, err := cfg.SortOptions()
	if err != nil {
		warn("%v; sorting alphabetically", err)
	}
	mgr := catalog.NewManager(cfg.GamesPath(), cfg.SearchPath(),
		catalog.WithLogger(log),
		catalog.WithArticles(cfg.ArticleList()),
	)
	store, err := mgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}
	store.Sort(opts)
	return &session{
		mgr:   mgr,
		store: store,
		sort:  opts,
		reg:   platform.Default(runner),
	}, nil
}

func (s *session) save() error {
	if err := s.mgr.Save(s.store); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	log.Debug("library saved", "path", s.mgr.Path(), "games", s.store.Len())
	return nil
}

// reload replaces the store with the library file's current contents.
func (s *session) reload() (*catalog.Store, error) {
	store, err := s.mgr.Load()
	if err != nil {
		return nil, err
	}
	store.Sort(s.sort)
	s.store = store
	return store, nil
}

func (s *session) scanConfig() platform.ScanConfig {
	return platform.ScanConfig{
		Options: platform.Options{
			SteamRoot:    cfg.Platforms.SteamRoot,
			LegendaryDir: cfg.Platforms.LegendaryDir,
			HeroicDir:    cfg.Platforms.HeroicDir,
			ItchDB:       cfg.Platforms.ItchDB,
			CustomDir:    cfg.Platforms.CustomDir,
			Logger:       log,
		},
		Enabled:     cfg.PlatformEnabled,
		AliasLength: cfg.Alias.MaxLength,
		Articles:    cfg.ArticleList(),
	}
}

// scan collects a batch from every enabled handler. It does not touch the
// store, so it may run off the UI goroutine.
func (s *session) scan(ctx context.Context) ([]*catalog.Game, []platform.Report, error) {
	return platform.Scan(ctx, s.reg, s.scanConfig())
}

// launch starts g, or asks its client to install it. A real launch is
// recorded and the library saved.
func (s *session) launch(g *catalog.Game) error {
	if err := platform.Launch(s.reg, runner, g); err != nil {
		return fmt.Errorf("launching %s: %w", g.Title(), err)
	}
	if !g.Installed() {
		log.Info("install requested", "title", g.Title(), "platform", g.Platform().String())
		return nil
	}
	s.store.RecordLaunch(g, time.Now())
	s.store.ClearNew()
	s.store.Sort(s.sort)
	log.Info("launched", "title", g.Title(), "platform", g.Platform().String(), "runs", g.Runs())
	return s.save()
}

func (s *session) openClient(p catalog.Platform) error {
	h, ok := s.reg.Handler(p)
	if !ok {
		return fmt.Errorf("%s: %w", p, platform.ErrUnsupported)
	}
	return h.OpenClient()
}

// hitRef parses "#n", a reference to the last search's results.
func hitRef(query string) (int, bool) {
	rest, found := strings.CutPrefix(query, "#")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolve finds the game a command-line query names: "#n" from the last
// search, then an exact title, then the single best search match.
func (s *session) resolve(query string) (*catalog.Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", catalog.ErrMalformedInput)
	}

	if n, ok := hitRef(query); ok {
		hits, err := s.mgr.LastSearch()
		if err != nil {
			return nil, fmt.Errorf("reading last search: %w", err)
		}
		if n < 1 || n > len(hits) {
			return nil, fmt.Errorf("result #%d of %d from the last search: %w", n, len(hits), catalog.ErrIndexOutOfRange)
		}
		if g := s.store.Find(hits[n-1].Title); g != nil {
			return g, nil
		}
		return nil, fmt.Errorf("%q is no longer in the library: %w", hits[n-1].Title, catalog.ErrNotFound)
	}

	if g := s.store.Find(query); g != nil {
		return g, nil
	}

	hits := s.store.Search(query, cfg.Search.MaxResults).Sorted()
	best, found := hits.Best()
	if !found {
		return nil, s.notFound(query)
	}
	if len(hits) > 1 && hits[1].Confidence == best.Confidence {
		if err := s.mgr.SaveSearch(hits); err != nil {
			log.Warn("saving search", "error", err)
		}
		printMatches(hits)
		return nil, fmt.Errorf("%q: %w; pick one with 'gamedock run #n'", query, errAmbiguous)
	}
	return best.Game, nil
}

// notFound builds the error for a query with no match, suggesting close
// titles.
func (s *session) notFound(query string) error {
	if sugg := s.store.Suggest(query, 3); len(sugg) > 0 {
		warn("did you mean: %s", strings.Join(sugg, ", "))
	}
	return fmt.Errorf("no game matches %q: %w", query, catalog.ErrNotFound)
}
