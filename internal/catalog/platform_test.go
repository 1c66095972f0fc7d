package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want catalog.Platform
	}{
		{"Steam", catalog.Steam},
		{"GOG Galaxy", catalog.GOG},
		{"gog", catalog.GOG},
		{"EPIC", catalog.Epic},
		{"Battle.net: 4", catalog.Battlenet},
		{"all games", catalog.All},
		{"notinstalled", catalog.NotInstalled},
		{"Custom games", catalog.Custom},
		{"Sega Saturn", catalog.Unknown},
		{"", catalog.Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.ParsePlatform(tt.in), tt.in)
	}
}

func TestPlatform_RoundTrip(t *testing.T) {
	for _, p := range append(catalog.Platforms(), catalog.Views()...) {
		assert.Equal(t, p, catalog.ParsePlatform(p.String()), p.String())
		assert.Equal(t, p, catalog.ParsePlatform(p.Key()), p.Key())
	}
}

func TestPlatform_Values(t *testing.T) {
	assert.Equal(t, -1, int(catalog.Unknown))
	assert.Equal(t, 3, int(catalog.Steam))
	assert.Equal(t, 16, int(catalog.Itch))
	assert.Equal(t, 30, int(catalog.RobotCache))
	assert.Equal(t, "Unknown", catalog.Platform(99).String())
}

func TestPlatforms_ExcludesViews(t *testing.T) {
	for _, p := range catalog.Platforms() {
		assert.False(t, p.IsView(), p.String())
		assert.NotEqual(t, catalog.Unknown, p)
	}
	for _, v := range catalog.Views() {
		assert.True(t, v.IsView(), v.String())
	}
	assert.Contains(t, catalog.Platforms(), catalog.Custom)
}

func TestNewGamesView(t *testing.T) {
	assert.Equal(t, 22, int(catalog.NewGames))
	assert.Equal(t, catalog.NewGames, catalog.ParsePlatform("new"))
	assert.Equal(t, "New games", catalog.NewGames.String())

	s := catalog.New()
	s.AddRecord(catalog.Record{Title: "Tunic", Platform: "Epic", New: true, Installed: true})
	s.AddRecord(catalog.Record{Title: "Inside", Platform: "Epic", Installed: true})
	assert.Equal(t, []string{"Tunic"}, s.Titles(catalog.NewGames))
}
