package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

func TestSetRating_Clamp(t *testing.T) {
	g := catalog.NewGame(catalog.Record{Title: "A", Rating: 3})
	for r := -10; r <= 10; r++ {
		before := g.Rating()
		ok := g.SetRating(r)
		if r >= 0 && r <= 5 {
			assert.True(t, ok, "rating %d", r)
			assert.Equal(t, r, g.Rating())
		} else {
			assert.False(t, ok, "rating %d", r)
			assert.Equal(t, before, g.Rating())
		}
	}
}

func TestNewGame_DropsBadRating(t *testing.T) {
	g := catalog.NewGame(catalog.Record{Title: "A", Rating: 9})
	assert.Equal(t, 0, g.Rating())
}

func TestIncrementDecrementRating(t *testing.T) {
	g := catalog.NewGame(catalog.Record{Title: "A", Rating: 5})
	assert.False(t, g.IncrementRating())
	assert.Equal(t, 5, g.Rating())
	assert.True(t, g.DecrementRating())
	assert.Equal(t, 4, g.Rating())

	g.SetRating(0)
	assert.False(t, g.DecrementRating())
	assert.Equal(t, 0, g.Rating())
}

func TestReplaceTags(t *testing.T) {
	g := catalog.NewGame(catalog.Record{Title: "A"})
	g.ReplaceTags(" rpg | co-op||Roguelike ")
	assert.Equal(t, []string{"rpg", "co-op", "Roguelike"}, g.Tags())
	assert.True(t, g.HasTag("ROGUELIKE"))

	tags := g.Tags()
	tags[0] = "changed"
	assert.Equal(t, "rpg", g.Tags()[0], "Tags returns a copy")

	g.ClearTags()
	assert.Empty(t, g.Tags())
}

func TestNewGame_UnknownPlatform(t *testing.T) {
	g := catalog.NewGame(catalog.Record{Title: "A", Platform: "Dreamcast"})
	assert.Equal(t, catalog.Unknown, g.Platform())
	assert.Equal(t, "Unknown", g.Record().Platform)
}
