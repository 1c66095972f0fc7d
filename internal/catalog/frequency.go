package catalog

import "time"

const (
	frequencyDecay = 0.9
	frequencyBoost = 5.0
)

// OnLaunch decays every game's frequency score by ten percent, then boosts
// target. Scores at or below zero are left alone.
func (s *Store) OnLaunch(target *Game) {
	for _, k := range s.all {
		g := s.games[k]
		if g.frequency > 0 {
			g.frequency *= frequencyDecay
		}
	}
	if k, ok := s.keyOf(target); ok {
		s.games[k].frequency += frequencyBoost
	}
}

// RecordLaunch applies the bookkeeping for a launch: frequency, run count and
// last-run date.
func (s *Store) RecordLaunch(g *Game, now time.Time) {
	s.OnLaunch(g)
	if k, ok := s.keyOf(g); ok {
		g = s.games[k]
		g.IncrementRuns()
		g.MarkRun(now)
	}
}
