package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func aliased(title, alias string) *catalog.Game {
	return catalog.NewGame(catalog.Record{Title: title, Alias: alias, Platform: "Steam", Installed: true})
}

func TestSearch_ZeldaPriority(t *testing.T) {
	s := newStore(game("The Legend of Zelda", catalog.Steam, true), game("Zelda II", catalog.Steam, true))

	got := s.Search("zelda", 0)
	assert.Equal(t, map[string]int{"Zelda II": 60, "The Legend of Zelda": 5}, got.Ranking())
}

func TestSearch_RuleTable(t *testing.T) {
	tests := []struct {
		name  string
		game  *catalog.Game
		query string
		want  catalog.Confidence
	}{
		{"exact title", aliased("Portal", ""), "PORTAL", catalog.ExactTitle},
		{"exact title with article", aliased("The Witness", ""), "the witness", catalog.ExactTitle},
		{"exact alias", aliased("Grand Theft Auto V", "gta5"), "gta5", catalog.ExactAlias},
		{"short title equals", aliased("The Witness", ""), "witness", catalog.ExactAlias},
		{"short title prefix", aliased("The Witcher 3", ""), "witch", catalog.BeginTitle},
		{"full title prefix", aliased("Half-Life 2", ""), "half", catalog.BeginTitle},
		{"alias prefix", aliased("Grand Theft Auto V", "gta5"), "gta", catalog.BeginAlias},
		{"subtitle after colon", aliased("Batman: Arkham City", ""), "arkham", catalog.BeginSubtitle},
		{"subtitle after dash", aliased("Star Wars - Knights of the Old Republic", ""), "knights", catalog.BeginSubtitle},
		{"last word with leading space", aliased("Super Meat Boy", ""), " boy", catalog.BeginLastWord},
		{"any word", aliased("Super Meat Boy", ""), "meat", catalog.BeginAnyWord},
		{"bare last word falls through", aliased("Super Meat Boy", ""), "boy", catalog.BeginAnyWord},
		{"mid-word is no match", aliased("Super Meat Boy", ""), "eat", catalog.NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(tt.game)
			got := s.Search(tt.query, 0)
			if tt.want == catalog.NoMatch {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Confidence)
			assert.Same(t, tt.game, got[0].Game)
		})
	}
}

func TestSearch_PopulatesSearchView(t *testing.T) {
	s := newStore(
		game("Hades", catalog.Epic, true),
		game("Portal", catalog.Steam, true),
		game("Hades II", catalog.Epic, false),
	)

	s.Search("hades", 0)
	assert.Equal(t, []string{"Hades", "*Hades II"}, s.Titles(catalog.Search))

	s.Search("portal", 0)
	assert.Equal(t, []string{"Portal"}, s.Titles(catalog.Search), "previous hits are cleared")
}

func TestSearch_BlankQueryIsNoop(t *testing.T) {
	s := newStore(game("Hades", catalog.Epic, true))
	s.Search("hades", 0)

	assert.Nil(t, s.Search("", 0))
	assert.Nil(t, s.Search("   ", 0))
	assert.Equal(t, []string{"Hades"}, s.Titles(catalog.Search))
}

// The cap counts hits in scan order, so a stronger hit after the cap is lost.
func TestSearch_MaxKeepsFirstFound(t *testing.T) {
	s := newStore(
		game("Doom Eternal", catalog.Steam, true),
		game("Final Doom", catalog.Steam, true),
		game("The Ultimate Doom", catalog.Steam, true),
		game("Doom", catalog.Steam, true),
	)

	got := s.Search("doom", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Doom Eternal", got[0].Title)
	assert.Equal(t, "Final Doom", got[1].Title)
	assert.NotContains(t, got.Ranking(), "Doom", "exact match beyond the cap is not reached")
	assert.Len(t, s.List(catalog.Search), 2)

	all := s.Search("doom", 0)
	assert.Len(t, all, 4)
	best, ok := all.Best()
	require.True(t, ok)
	assert.Equal(t, "Doom", best.Title)
	assert.Equal(t, catalog.ExactTitle, best.Confidence)
}

func TestMatches_Sorted(t *testing.T) {
	m := catalog.Matches{
		{Title: "a", Confidence: catalog.BeginAnyWord},
		{Title: "b", Confidence: catalog.BeginTitle},
		{Title: "c", Confidence: catalog.BeginAnyWord},
	}
	sorted := m.Sorted()
	assert.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].Title, sorted[1].Title, sorted[2].Title})
	assert.Equal(t, "a", m[0].Title, "receiver is not reordered")

	_, ok := catalog.Matches(nil).Best()
	assert.False(t, ok)
}

func TestMatchLoose(t *testing.T) {
	s := newStore(
		aliased("The Witcher 3", "w3"),
		aliased("Witchfire", ""),
		aliased("Into the Breach", ""),
		aliased("Super Meat Boy", "smb"),
	)

	assert.ElementsMatch(t, []string{"The Witcher 3", "Witchfire"}, gameTitles(s.MatchLoose("witch")))
	assert.Equal(t, []string{"Super Meat Boy"}, gameTitles(s.MatchLoose("SMB")))
	assert.Equal(t, []string{"Into the Breach"}, gameTitles(s.MatchLoose("into")))
	assert.Empty(t, s.MatchLoose(""))
	assert.Empty(t, s.List(catalog.Search), "loose matching leaves the search view alone")
}

func TestSuggest(t *testing.T) {
	s := newStore(
		game("Hollow Knight", catalog.Steam, true),
		game("Hades", catalog.Epic, true),
	)

	got := s.Suggest("hlwknt", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "Hollow Knight", got[0])
	assert.Empty(t, s.Suggest("", 3))
	assert.Empty(t, s.Suggest("hades", 0))
}
