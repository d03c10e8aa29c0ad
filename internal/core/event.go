package core

// EventKind identifies what an engine transition did.
type EventKind int

const (
	EventReveal   EventKind = iota // cell uncovered, Value = neighbour mine count
	EventExplode                   // mine uncovered
	EventFlag                      // flag placed
	EventQuestion                  // flag turned into a question mark
	EventUnflag                    // mark cleared
	EventMerge                     // tiles merged, Value = new tile value
	EventSpawn                     // tile spawned, Value = tile value
	EventFlip                      // card turned face up, Value = symbol
	EventMatch                     // pair matched, Value = symbol
	EventMismatch                  // pair did not match, reset pending
	EventHide                      // card turned face down again
	EventSlide                     // tile moved into the empty slot, Value = tile
	EventWin
	EventLose
)

var eventNames = [...]string{
	EventReveal:   "reveal",
	EventExplode:  "explode",
	EventFlag:     "flag",
	EventQuestion: "question",
	EventUnflag:   "unflag",
	EventMerge:    "merge",
	EventSpawn:    "spawn",
	EventFlip:     "flip",
	EventMatch:    "match",
	EventMismatch: "mismatch",
	EventHide:     "hide",
	EventSlide:    "slide",
	EventWin:      "win",
	EventLose:     "lose",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a single observable change produced by an engine operation.
type Event struct {
	Kind  EventKind
	Pos   Pos
	Value int
}

// Outcome is the terminal result of a game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// Terminal is set on a MoveResult when the move ended the game,
// or for 2048 when the winning tile first appeared.
type Terminal struct {
	Outcome Outcome
}

// MoveResult is what every engine entry point returns.
// Changed is false for rejected moves, which carry no events.
type MoveResult struct {
	Changed  bool
	Events   []Event
	Terminal *Terminal
}

// Emit appends an event and marks the result as a state change.
func (r *MoveResult) Emit(kind EventKind, p Pos, value int) {
	r.Changed = true
	r.Events = append(r.Events, Event{Kind: kind, Pos: p, Value: value})
}

// Finish records a terminal outcome on the result.
func (r *MoveResult) Finish(o Outcome) {
	r.Terminal = &Terminal{Outcome: o}
}

// Count returns how many events of the given kind the result holds.
func (r MoveResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
