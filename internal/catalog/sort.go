package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMethod selects the primary ordering applied after the alphabetic pass.
type SortMethod int

const (
	SortAlpha SortMethod = iota
	SortDate
	SortFrequency
	SortRating
)

var sortMethodNames = map[SortMethod]string{
	SortAlpha:     "alpha",
	SortDate:      "date",
	SortFrequency: "frequency",
	SortRating:    "rating",
}

func (m SortMethod) String() string {
	if s, ok := sortMethodNames[m]; ok {
		return s
	}
	return "alpha"
}

// Next returns the method the menu switches to on the sort key.
func (m SortMethod) Next() SortMethod {
	switch m {
	case SortDate:
		return SortFrequency
	case SortFrequency:
		return SortRating
	case SortRating:
		return SortAlpha
	default:
		return SortDate
	}
}

// ParseSortMethod accepts a method name or a common abbreviation.
func ParseSortMethod(s string) (SortMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alpha", "alphabetic", "a", "title", "name":
		return SortAlpha, nil
	case "date", "d", "recent", "lastrun":
		return SortDate, nil
	case "frequency", "freq", "f":
		return SortFrequency, nil
	case "rating", "r", "stars":
		return SortRating, nil
	}
	return SortAlpha, fmt.Errorf("unknown sort method %q: %w", s, ErrMalformedInput)
}

// SortOptions carries the active method and the secondary preferences.
type SortOptions struct {
	Method SortMethod
	// FaveSort floats favourites above the rest.
	FaveSort bool
	// InstSort floats installed games above the rest.
	InstSort bool
	// IgnoreArticle drops a leading article from the alphabetic key.
	IgnoreArticle bool
	// Articles used when IgnoreArticle is set. Nil means DefaultArticles.
	Articles []string
}

// sortField names the value a sort pass compares.
type sortField int

const (
	fieldTitle sortField = iota
	fieldRating
	fieldFrequency
	fieldLastRun
	fieldFavourite
	fieldInstalled
)

// sortKey is one stable pass of the pipeline.
type sortKey struct {
	field      sortField
	descending bool
}

// pipeline lists passes weakest first; the last pass is the most significant.
func (o SortOptions) pipeline() []sortKey {
	keys := []sortKey{{field: fieldTitle}}
	switch o.Method {
	case SortRating:
		keys = append(keys, sortKey{field: fieldRating, descending: true})
	case SortFrequency:
		keys = append(keys, sortKey{field: fieldFrequency, descending: true})
	case SortDate:
		keys = append(keys, sortKey{field: fieldLastRun, descending: true})
	}
	if o.FaveSort {
		keys = append(keys, sortKey{field: fieldFavourite, descending: true})
	}
	if o.InstSort {
		keys = append(keys, sortKey{field: fieldInstalled, descending: true})
	}
	return keys
}

func (k sortKey) compare(a, b *Game, articles []string) int {
	var c int
	switch k.field {
	case fieldTitle:
		c = compareTitles(sortTitle(a.title, articles), sortTitle(b.title, articles))
	case fieldRating:
		c = cmp.Compare(a.rating, b.rating)
	case fieldFrequency:
		c = cmp.Compare(a.frequency, b.frequency)
	case fieldLastRun:
		c = a.lastRun.Compare(b.lastRun)
	case fieldFavourite:
		c = compareBool(a.favourite, b.favourite)
	case fieldInstalled:
		c = compareBool(a.installed, b.installed)
	}
	if k.descending {
		return -c
	}
	return c
}

// SortGames orders games in place according to opts.
func SortGames(games []*Game, opts SortOptions) {
	sortBy(games, func(g *Game) *Game { return g }, opts)
}

// sortBy runs the pipeline over any slice whose elements resolve to games.
func sortBy[T any](items []T, game func(T) *Game, opts SortOptions) {
	var articles []string
	if opts.IgnoreArticle {
		articles = opts.Articles
		if articles == nil {
			articles = DefaultArticles
		}
	}
	for _, key := range opts.pipeline() {
		slices.SortStableFunc(items, func(a, b T) int {
			return key.compare(game(a), game(b), articles)
		})
	}
}

func sortTitle(title string, articles []string) string {
	if len(articles) == 0 {
		return title
	}
	return stripArticle(title, articles)
}

// compareTitles folds case first so "alpha" and "Alpha" sit together, then
// falls back to byte order so distinct titles never compare equal.
func compareTitles(a, b string) int {
	if c := strings.Compare(foldCase(a), foldCase(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
