package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Confidence ranks how a query matched a title. It reflects which rule hit,
// not a probability.
type Confidence int

const (
	NoMatch       Confidence = 0
	BeginAnyWord  Confidence = 5
	BeginLastWord Confidence = 15
	BeginSubtitle Confidence = 25
	BeginAlias    Confidence = 50
	BeginTitle    Confidence = 60
	ExactAlias    Confidence = 90
	ExactTitle    Confidence = 100
)

func (c Confidence) String() string {
	switch c {
	case ExactTitle:
		return "exact title"
	case ExactAlias:
		return "exact alias"
	case BeginTitle:
		return "title prefix"
	case BeginAlias:
		return "alias prefix"
	case BeginSubtitle:
		return "subtitle prefix"
	case BeginLastWord:
		return "last word"
	case BeginAnyWord:
		return "word"
	default:
		return "none"
	}
}

// Match is one search hit.
type Match struct {
	Game       *Game      `json:"-" yaml:"-"`
	Title      string     `json:"title" yaml:"title"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// Matches holds search hits in the order they were found.
type Matches []Match

// Ranking returns title → confidence.
func (m Matches) Ranking() map[string]int {
	out := make(map[string]int, len(m))
	for _, hit := range m {
		out[hit.Title] = int(hit.Confidence)
	}
	return out
}

// Best returns the highest-confidence hit, preferring the earliest on ties.
func (m Matches) Best() (Match, bool) {
	if len(m) == 0 {
		return Match{}, false
	}
	best := m[0]
	for _, hit := range m[1:] {
		if hit.Confidence > best.Confidence {
			best = hit
		}
	}
	return best, true
}

// Sorted returns a copy ordered by confidence, keeping found order on ties.
func (m Matches) Sorted() Matches {
	out := slices.Clone(m)
	slices.SortStableFunc(out, func(a, b Match) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return out
}

// Search scores every game in the All view against query and replaces the
// Search view with the hits, in All order. When max is positive scanning
// stops after max hits, so a stronger match later in the list can be missed.
// A blank query changes nothing and returns nil.
func (s *Store) Search(query string, max int) Matches {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := lower(query)

	s.search = nil
	var out Matches
	for _, k := range s.all {
		g := s.games[k]
		c := s.confidence(g, q)
		if c == NoMatch {
			continue
		}
		s.search = append(s.search, k)
		out = append(out, Match{Game: g, Title: g.title, Confidence: c})
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// confidence applies the rules strongest first and stops at the first hit.
func (s *Store) confidence(g *Game, q string) Confidence {
	full := lower(g.title)
	short := stripArticle(full, s.articles)
	alias := lower(g.alias)

	switch {
	case full == q:
		return ExactTitle
	case alias == q || short == q:
		return ExactAlias
	case strings.HasPrefix(short, q) || strings.HasPrefix(full, q):
		return BeginTitle
	case alias != "" && strings.HasPrefix(alias, q):
		return BeginAlias
	case subtitleHasPrefix(full, q):
		return BeginSubtitle
	case lastWordHasPrefix(full, q):
		return BeginLastWord
	case strings.Contains(full, " "+q):
		return BeginAnyWord
	}
	return NoMatch
}

// MatchLoose returns every game whose alias, title (with or without its
// article) or last word starts with query. No scoring, no view changes.
func (s *Store) MatchLoose(query string) []*Game {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := lower(query)
	var out []*Game
	for _, k := range s.all {
		g := s.games[k]
		full := lower(g.title)
		if strings.HasPrefix(lower(g.alias), q) ||
			strings.HasPrefix(stripArticle(full, s.articles), q) ||
			strings.HasPrefix(full, q) ||
			lastWordHasPrefix(full, q) {
			out = append(out, g)
		}
	}
	return out
}

// Suggest returns up to n titles that fuzzily resemble query, for "did you
// mean" hints after a search comes back empty.
func (s *Store) Suggest(query string, n int) []string {
	if strings.TrimSpace(query) == "" || n <= 0 {
		return nil
	}
	titles := make([]string, 0, len(s.all))
	for _, k := range s.all {
		titles = append(titles, s.games[k].title)
	}
	var out []string
	for _, m := range fuzzy.Find(query, titles) {
		out = append(out, m.Str)
		if len(out) == n {
			break
		}
	}
	return out
}

// subtitleHasPrefix checks the text after the first "- " or ": ".
func subtitleHasPrefix(full, q string) bool {
	for _, sep := range []string{"- ", ": "} {
		if i := strings.Index(full, sep); i >= 0 && strings.HasPrefix(full[i+len(sep):], q) {
			return true
		}
	}
	return false
}

// lastWordHasPrefix compares q against the last word including the space in
// front of it, so only a query that itself leads with a space can hit.
// Bare words are picked up by the any-word rule instead.
func lastWordHasPrefix(full, q string) bool {
	i := strings.LastIndexByte(full, ' ')
	return i >= 0 && strings.HasPrefix(full[i:], q)
}

// Filter narrows a game list for the list command. Empty fields match all.
type Filter struct {
	Platform      string
	Tag           string
	Search        string // substring of title, alias or any tag
	InstalledOnly bool
}

// Apply returns the subset of games matching all non-empty filter fields.
func (f Filter) Apply(games []*Game) []*Game {
	var platform Platform
	if f.Platform != "" {
		platform = ParsePlatform(f.Platform)
	}
	var out []*Game
	for _, g := range games {
		if f.Platform != "" && g.platform != platform {
			continue
		}
		if f.Tag != "" && !g.HasTag(f.Tag) {
			continue
		}
		if f.InstalledOnly && !g.installed {
			continue
		}
		if f.Search != "" && !matchesSearch(g, f.Search) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesSearch(g *Game, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(g.title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(g.alias), q) {
		return true
	}
	for _, t := range g.tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
