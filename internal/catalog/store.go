package catalog

import (
	"fmt"
	"log/slog"
	"slices"
)

// Key is the arena handle for a game inside a Store. Keys are never reused.
type Key uint64

// Store owns every game and the ordered views over them. Views hold keys
// into a single arena, so a flag change on a game is seen by every view.
// A Store is not safe for concurrent use; mutate it from one goroutine.
type Store struct {
	games   map[Key]*Game
	byTitle map[string]Key
	next    Key

	all          []Key
	favourites   []Key
	hidden       []Key
	newGames     []Key
	notInstalled []Key
	search       []Key
	byPlatform   map[Platform][]Key

	articles []string
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recoverable lookups.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithArticles replaces DefaultArticles for matching and sorting.
func WithArticles(articles []string) Option {
	return func(s *Store) {
		if articles != nil {
			s.articles = articles
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		games:      make(map[Key]*Game),
		byTitle:    make(map[string]Key),
		byPlatform: make(map[Platform][]Key),
		articles:   DefaultArticles,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Articles returns the article list in use.
func (s *Store) Articles() []string { return s.articles }

// Len returns the number of games in the store.
func (s *Store) Len() int { return len(s.all) }

// Add inserts g into the arena and every view its flags select. A nil game
// is ignored and a game whose title is already present is refused.
func (s *Store) Add(g *Game) bool {
	if g == nil {
		return false
	}
	if _, dup := s.byTitle[g.title]; dup {
		return false
	}
	k := s.insert(g)
	s.index(k, g)
	return true
}

// AddRecord builds a game from r and adds it. It returns nil when the title
// is already present.
func (s *Store) AddRecord(r Record) *Game {
	g := NewGame(r)
	if !s.Add(g) {
		return nil
	}
	return g
}

// Load seeds the store from persisted records and returns how many were
// added. Duplicate titles after the first are skipped.
func (s *Store) Load(records []Record) int {
	n := 0
	for _, r := range records {
		if s.AddRecord(r) != nil {
			n++
		} else {
			s.logger.Warn("skipping duplicate title", "title", r.Title)
		}
	}
	return n
}

// Remove drops g from every view and from the arena. Absent games are a no-op.
func (s *Store) Remove(g *Game) bool {
	if g == nil {
		return false
	}
	k, ok := s.byTitle[g.title]
	if !ok {
		return false
	}
	s.unindex(k, s.games[k])
	s.search = without(s.search, k)
	s.drop(k)
	return true
}

// Find returns the game with exactly this title, or nil.
func (s *Store) Find(title string) *Game {
	if k, ok := s.byTitle[title]; ok {
		return s.games[k]
	}
	return nil
}

// Contains reports whether g is held by the store.
func (s *Store) Contains(g *Game) bool {
	if g == nil {
		return false
	}
	k, ok := s.byTitle[g.title]
	return ok && s.games[k] == g
}

// MergeResult lists what a merge changed.
type MergeResult struct {
	Added   []*Game
	Removed []*Game
}

// Merge reconciles a complete scan batch against the store. Games missing
// from the batch are removed unless they belong to the Custom platform or to
// one of keep, the platforms whose scan did not complete. Games new to the
// store are added and flagged new. Survivors keep their user state but take
// the installed flag from the batch. All views are then rebuilt from the
// full list.
func (s *Store) Merge(batch []*Game, keep ...Platform) MergeResult {
	incoming := make(map[string]*Game, len(batch))
	var order []*Game
	for _, g := range batch {
		if g == nil {
			continue
		}
		if _, dup := incoming[g.title]; dup {
			continue
		}
		incoming[g.title] = g
		order = append(order, g)
	}

	var res MergeResult
	for _, k := range s.all {
		g := s.games[k]
		if g.platform == Custom || slices.Contains(keep, g.platform) {
			continue
		}
		if _, ok := incoming[g.title]; !ok {
			res.Removed = append(res.Removed, g)
		}
	}
	for _, g := range order {
		if k, ok := s.byTitle[g.title]; ok {
			s.games[k].installed = g.installed
			continue
		}
		res.Added = append(res.Added, g)
	}

	for _, g := range res.Removed {
		s.drop(s.byTitle[g.title])
	}
	for _, g := range res.Added {
		g.isNew = true
		s.insert(g)
	}
	s.rebuild()
	return res
}

// ToggleFavourite flips the favourite flag and updates the Favourites view.
// A newly favourited game is placed in sorted position.
func (s *Store) ToggleFavourite(g *Game, opts SortOptions) bool {
	k, ok := s.keyOf(g)
	if !ok {
		s.logger.Warn("toggle favourite on unknown game", "title", titleOf(g))
		return false
	}
	g = s.games[k]
	g.favourite = !g.favourite
	if g.favourite {
		s.favourites = append(s.favourites, k)
		s.sortView(Favourites, opts)
	} else {
		s.favourites = without(s.favourites, k)
	}
	return true
}

// ToggleHidden flips the hidden flag and updates the Hidden view.
func (s *Store) ToggleHidden(g *Game, opts SortOptions) bool {
	k, ok := s.keyOf(g)
	if !ok {
		s.logger.Warn("toggle hidden on unknown game", "title", titleOf(g))
		return false
	}
	g = s.games[k]
	g.hidden = !g.hidden
	if g.hidden {
		s.hidden = append(s.hidden, k)
		s.sortView(Hidden, opts)
	} else {
		s.hidden = without(s.hidden, k)
	}
	return true
}

// ToggleFavouriteAt toggles the game shown at index i of view.
func (s *Store) ToggleFavouriteAt(view Platform, i int, opts SortOptions) (*Game, error) {
	g, err := s.GameAt(view, i)
	if err != nil {
		return nil, err
	}
	s.ToggleFavourite(g, opts)
	return g, nil
}

// ToggleHiddenAt toggles the game shown at index i of view.
func (s *Store) ToggleHiddenAt(view Platform, i int, opts SortOptions) (*Game, error) {
	g, err := s.GameAt(view, i)
	if err != nil {
		return nil, err
	}
	s.ToggleHidden(g, opts)
	return g, nil
}

// SetInstalled updates the installed flag and the Not installed view.
func (s *Store) SetInstalled(g *Game, installed bool) bool {
	k, ok := s.keyOf(g)
	if !ok {
		return false
	}
	g = s.games[k]
	if g.installed == installed {
		return true
	}
	g.installed = installed
	if installed {
		s.notInstalled = without(s.notInstalled, k)
	} else {
		s.notInstalled = append(s.notInstalled, k)
	}
	return true
}

// ClearNew empties the NewGames view and clears the flag on every game.
func (s *Store) ClearNew() {
	s.newGames = nil
	for _, k := range s.all {
		s.games[k].isNew = false
	}
}

// List returns every game in view, in view order. Unknown views yield an
// empty slice.
func (s *Store) List(view Platform) []*Game {
	keys, _ := s.view(view)
	return s.resolve(keys)
}

// Titles returns the display strings for view. Favourites are marked " [F]"
// and uninstalled games are prefixed "*". Hidden games only appear in the
// Hidden, Favourites and New views; in Favourites they are marked " [H]".
func (s *Store) Titles(view Platform) []string {
	keys := s.visible(view)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, displayTitle(view, s.games[k]))
	}
	return out
}

// Visible returns the games behind Titles(view), index for index.
func (s *Store) Visible(view Platform) []*Game {
	return s.resolve(s.visible(view))
}

// GameAt returns the game shown at index i of Titles(view).
func (s *Store) GameAt(view Platform, i int) (*Game, error) {
	keys := s.visible(view)
	if i < 0 || i >= len(keys) {
		return nil, fmt.Errorf("%s entry %d of %d: %w", view, i, len(keys), ErrIndexOutOfRange)
	}
	return s.games[keys[i]], nil
}

// Game is GameAt for callers that treat a stale index as "nothing selected".
// The lookup failure is logged and nil returned.
func (s *Store) Game(view Platform, i int) *Game {
	g, err := s.GameAt(view, i)
	if err != nil {
		s.logger.Warn("game lookup failed", "view", view.String(), "index", i, "error", err)
		return nil
	}
	return g
}

// PlatformCount pairs a view or platform with its size.
type PlatformCount struct {
	Platform Platform
	Count    int
}

// Counts lists the synthetic views followed by every platform that has at
// least one game.
func (s *Store) Counts() []PlatformCount {
	var out []PlatformCount
	for _, v := range Views() {
		keys, _ := s.view(v)
		out = append(out, PlatformCount{Platform: v, Count: len(keys)})
	}
	for _, p := range append(Platforms(), Unknown) {
		if keys := s.byPlatform[p]; len(keys) > 0 {
			out = append(out, PlatformCount{Platform: p, Count: len(keys)})
		}
	}
	return out
}

// Sort orders every view. Favourites never floats favourites and Not
// installed never floats installed games. Search keeps match order.
func (s *Store) Sort(opts SortOptions) {
	for p := range s.byPlatform {
		s.sortView(p, opts)
	}
	s.sortView(All, opts)
	s.sortView(NewGames, opts)
	s.sortView(Hidden, opts)
	s.sortView(Favourites, opts)
	s.sortView(NotInstalled, opts)
}

// Records flattens the All view for persistence.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.all))
	for _, k := range s.all {
		out = append(out, s.games[k].Record())
	}
	return out
}

func (s *Store) sortView(p Platform, opts SortOptions) {
	if opts.Articles == nil {
		opts.Articles = s.articles
	}
	switch p {
	case Favourites:
		opts.FaveSort = false
	case NotInstalled:
		opts.InstSort = false
	case Search:
		return
	}
	keys, ok := s.view(p)
	if !ok {
		return
	}
	sortBy(keys, s.lookup, opts)
}

func (s *Store) lookup(k Key) *Game { return s.games[k] }

func (s *Store) view(p Platform) ([]Key, bool) {
	switch p {
	case All:
		return s.all, true
	case Favourites:
		return s.favourites, true
	case Hidden:
		return s.hidden, true
	case NewGames:
		return s.newGames, true
	case NotInstalled:
		return s.notInstalled, true
	case Search:
		return s.search, true
	}
	keys, ok := s.byPlatform[p]
	return keys, ok
}

func (s *Store) visible(view Platform) []Key {
	keys, _ := s.view(view)
	switch view {
	case Favourites, NewGames, Hidden:
		return keys
	}
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if !s.games[k].hidden {
			out = append(out, k)
		}
	}
	return out
}

func displayTitle(view Platform, g *Game) string {
	title := g.title
	switch view {
	case Favourites:
		if g.hidden {
			title += " [H]"
		}
	case NewGames:
	default:
		if g.favourite {
			title += " [F]"
		}
	}
	if !g.installed && view != NotInstalled {
		title = "*" + title
	}
	return title
}

func (s *Store) resolve(keys []Key) []*Game {
	out := make([]*Game, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.games[k])
	}
	return out
}

func (s *Store) keyOf(g *Game) (Key, bool) {
	if g == nil {
		return 0, false
	}
	k, ok := s.byTitle[g.title]
	return k, ok
}

// insert places g in the arena and the All view only.
func (s *Store) insert(g *Game) Key {
	s.next++
	k := s.next
	s.games[k] = g
	s.byTitle[g.title] = k
	s.all = append(s.all, k)
	return k
}

// drop removes k from the arena and the All view only.
func (s *Store) drop(k Key) {
	g, ok := s.games[k]
	if !ok {
		return
	}
	s.all = without(s.all, k)
	delete(s.byTitle, g.title)
	delete(s.games, k)
}

// index adds k to its platform and to each flag view.
func (s *Store) index(k Key, g *Game) {
	s.byPlatform[g.platform] = append(s.byPlatform[g.platform], k)
	if g.favourite {
		s.favourites = append(s.favourites, k)
	}
	if g.isNew {
		s.newGames = append(s.newGames, k)
	}
	if g.hidden {
		s.hidden = append(s.hidden, k)
	}
	if !g.installed {
		s.notInstalled = append(s.notInstalled, k)
	}
}

// unindex reverses index using the game's current flags.
func (s *Store) unindex(k Key, g *Game) {
	if keys := without(s.byPlatform[g.platform], k); len(keys) > 0 {
		s.byPlatform[g.platform] = keys
	} else {
		delete(s.byPlatform, g.platform)
	}
	if g.favourite {
		s.favourites = without(s.favourites, k)
	}
	if g.isNew {
		s.newGames = without(s.newGames, k)
	}
	if g.hidden {
		s.hidden = without(s.hidden, k)
	}
	if !g.installed {
		s.notInstalled = without(s.notInstalled, k)
	}
}

// rebuild regenerates every derived view from All.
func (s *Store) rebuild() {
	s.byPlatform = make(map[Platform][]Key)
	s.favourites, s.hidden, s.newGames, s.notInstalled = nil, nil, nil, nil
	for _, k := range s.all {
		s.index(k, s.games[k])
	}
	s.search = slices.DeleteFunc(s.search, func(k Key) bool {
		_, ok := s.games[k]
		return !ok
	})
}

func without(keys []Key, k Key) []Key {
	if i := slices.Index(keys, k); i >= 0 {
		return slices.Delete(keys, i, i+1)
	}
	return keys
}

func titleOf(g *Game) string {
	if g == nil {
		return ""
	}
	return g.title
}
