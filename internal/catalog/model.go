package catalog

import (
	"slices"
	"strings"
	"time"
)

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)

// Record is one entry in games.yml and the tuple a scanner hands back.
type Record struct {
	ID        string    `yaml:"id" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Launch    string    `yaml:"launch,omitempty" json:"launch,omitempty"`
	LaunchURL string    `yaml:"launch_url,omitempty" json:"launch_url,omitempty"`
	Icon      string    `yaml:"icon,omitempty" json:"icon,omitempty"`
	IconURL   string    `yaml:"icon_url,omitempty" json:"icon_url,omitempty"`
	Uninstall string    `yaml:"uninstall,omitempty" json:"uninstall,omitempty"`
	Installed bool      `yaml:"installed" json:"installed"`
	Favourite bool      `yaml:"favourite,omitempty" json:"favourite,omitempty"`
	New       bool      `yaml:"new,omitempty" json:"new,omitempty"`
	Hidden    bool      `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Alias     string    `yaml:"alias,omitempty" json:"alias,omitempty"`
	Platform  string    `yaml:"platform" json:"platform"`
	Tags      []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	LastRun   time.Time `yaml:"last_run,omitempty" json:"last_run,omitempty"`
	Rating    int       `yaml:"rating,omitempty" json:"rating,omitempty"`
	Runs      uint      `yaml:"runs,omitempty" json:"runs,omitempty"`
	Frequency float64   `yaml:"frequency,omitempty" json:"frequency,omitempty"`
}

// Game is a single library entry. Title and launch metadata are fixed at
// creation. View membership flags are changed only through Store so every
// view referencing the game stays consistent.
type Game struct {
	id        string
	title     string
	launch    string
	launchURL string
	icon      string
	iconURL   string
	uninstall string
	platform  Platform

	installed bool
	favourite bool
	hidden    bool
	isNew     bool

	alias     string
	tags      []string
	lastRun   time.Time
	rating    int
	runs      uint
	frequency float64
}

// NewGame builds a game from a record. An unrecognised platform name maps
// to Unknown and an out-of-range rating is dropped.
func NewGame(r Record) *Game {
	g := &Game{
		id:        r.ID,
		title:     r.Title,
		launch:    r.Launch,
		launchURL: r.LaunchURL,
		icon:      r.Icon,
		iconURL:   r.IconURL,
		uninstall: r.Uninstall,
		platform:  ParsePlatform(r.Platform),
		installed: r.Installed,
		favourite: r.Favourite,
		hidden:    r.Hidden,
		isNew:     r.New,
		alias:     r.Alias,
		lastRun:   r.LastRun,
		runs:      r.Runs,
		frequency: r.Frequency,
	}
	g.SetTags(r.Tags)
	g.SetRating(r.Rating)
	return g
}

// Record flattens the game back into its persisted form.
func (g *Game) Record() Record {
	return Record{
		ID:        g.id,
		Title:     g.title,
		Launch:    g.launch,
		LaunchURL: g.launchURL,
		Icon:      g.icon,
		IconURL:   g.iconURL,
		Uninstall: g.uninstall,
		Installed: g.installed,
		Favourite: g.favourite,
		New:       g.isNew,
		Hidden:    g.hidden,
		Alias:     g.alias,
		Platform:  g.platform.String(),
		Tags:      g.Tags(),
		LastRun:   g.lastRun,
		Rating:    g.rating,
		Runs:      g.runs,
		Frequency: g.frequency,
	}
}

func (g *Game) ID() string          { return g.id }
func (g *Game) Title() string       { return g.title }
func (g *Game) Launch() string      { return g.launch }
func (g *Game) LaunchURL() string   { return g.launchURL }
func (g *Game) Icon() string        { return g.icon }
func (g *Game) IconURL() string     { return g.iconURL }
func (g *Game) Uninstall() string   { return g.uninstall }
func (g *Game) Platform() Platform  { return g.platform }
func (g *Game) Installed() bool     { return g.installed }
func (g *Game) Favourite() bool     { return g.favourite }
func (g *Game) Hidden() bool        { return g.hidden }
func (g *Game) New() bool           { return g.isNew }
func (g *Game) Alias() string       { return g.alias }
func (g *Game) LastRun() time.Time  { return g.lastRun }
func (g *Game) Rating() int         { return g.rating }
func (g *Game) Runs() uint          { return g.runs }
func (g *Game) Frequency() float64  { return g.frequency }
func (g *Game) SetAlias(a string)   { g.alias = a }
func (g *Game) MarkRun(t time.Time) { g.lastRun = t }
func (g *Game) IncrementRuns()      { g.runs++ }

// SetRating assigns r if it lies within [MinRating, MaxRating] and reports
// whether it did. Out-of-range values leave the rating untouched.
func (g *Game) SetRating(r int) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	g.rating = r
	return true
}

// IncrementRating raises the rating by one, stopping at MaxRating.
func (g *Game) IncrementRating() bool { return g.SetRating(g.rating + 1) }

// DecrementRating lowers the rating by one, stopping at MinRating.
func (g *Game) DecrementRating() bool { return g.SetRating(g.rating - 1) }

// Tags returns a copy of the tag list.
func (g *Game) Tags() []string {
	if len(g.tags) == 0 {
		return nil
	}
	return slices.Clone(g.tags)
}

// SetTags replaces the tag list, trimming entries and dropping blanks.
func (g *Game) SetTags(tags []string) {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	g.tags = out
}

// ReplaceTags parses a pipe-delimited list such as "rpg|co-op".
func (g *Game) ReplaceTags(s string) {
	g.SetTags(strings.Split(s, "|"))
}

// ClearTags removes every tag.
func (g *Game) ClearTags() { g.tags = nil }

// HasTag reports whether the game carries tag, ignoring case.
func (g *Game) HasTag(tag string) bool {
	for _, t := range g.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
