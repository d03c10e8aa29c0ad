package t2048

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Moves   int
	Board   Board
	MaxTile int
	Won     bool
	Over    bool
	Seconds int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{Tick: g.tick}
	}
	board := g.engine.Board()
	return Snapshot{
		Tick:    g.tick,
		Score:   g.engine.Score(),
		Moves:   g.engine.Moves(),
		Board:   board,
		MaxTile: MaxTile(board),
		Won:     g.engine.Won(),
		Over:    g.engine.Over(),
		Seconds: g.clock.Seconds(),
	}
}
