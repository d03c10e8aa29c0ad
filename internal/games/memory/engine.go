// Package memory implements Memory Match: a shuffled deck of symbol pairs
// turned over two at a time.
package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// Card is one card of the deck. Symbol indexes the configured symbol list.
type Card struct {
	Symbol  int
	FaceUp  bool
	Matched bool
}

// mismatch is a face-up non-matching pair waiting to be turned back.
type mismatch struct {
	a, b int
	left time.Duration
}

// Engine holds one Memory Match session.
type Engine struct {
	difficulty config.Difficulty
	delay      time.Duration

	cards   []Card
	pairs   int
	first   int // index of the single face-up unmatched card, or -1
	pending *mismatch
	moves   int
	matched int
}

// New starts a game with the built-in presets.
func New(difficulty string, rng *rand.Rand) (*Engine, error) {
	return NewWithConfig(config.DefaultMemoryConfig(), difficulty, rng)
}

// NewWithConfig deals and shuffles a deck of preset.Pairs pairs.
func NewWithConfig(cfg config.MemoryConfig, difficulty string, rng *rand.Rand) (*Engine, error) {
	p, err := cfg.Preset(difficulty)
	if err != nil {
		return nil, err
	}

	symbols := make([]int, 0, p.Pairs*2)
	for s := range p.Pairs {
		symbols = append(symbols, s, s)
	}
	rng.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	e, err := NewFromSymbols(symbols, time.Duration(cfg.MismatchDelayMS)*time.Millisecond)
	if err != nil {
		return nil, err
	}
	e.difficulty = config.Difficulty(difficulty)
	return e, nil
}

// NewFromSymbols builds a deck in the given order. Every symbol must appear
// exactly twice and the deck must not be empty.
func NewFromSymbols(symbols []int, delay time.Duration) (*Engine, error) {
	if len(symbols) == 0 {
		return nil, errors.New("memory: empty deck")
	}
	counts := map[int]int{}
	for _, s := range symbols {
		counts[s]++
	}
	for s, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("memory: symbol %d appears %d times, want 2", s, n)
		}
	}

	cards := make([]Card, len(symbols))
	for i, s := range symbols {
		cards[i] = Card{Symbol: s}
	}
	return &Engine{
		difficulty: config.DifficultyEasy,
		delay:      delay,
		cards:      cards,
		pairs:      len(counts),
		first:      -1,
	}, nil
}

// Flip turns card i face up. It is ignored for out-of-range, face-up or
// matched cards, while a mismatch is pending, and after the game is won.
// The second card of a turn counts as a move and is compared immediately.
func (e *Engine) Flip(i int) core.MoveResult {
	var res core.MoveResult
	if !e.CanFlip() || i < 0 || i >= len(e.cards) {
		return res
	}
	card := &e.cards[i]
	if card.FaceUp || card.Matched {
		return res
	}

	card.FaceUp = true
	res.Emit(core.EventFlip, indexPos(i), card.Symbol)

	if e.first < 0 {
		e.first = i
		return res
	}

	a, b := e.first, i
	e.first = -1
	e.moves++

	if e.cards[a].Symbol != e.cards[b].Symbol {
		e.pending = &mismatch{a: a, b: b, left: e.delay}
		res.Emit(core.EventMismatch, indexPos(b), card.Symbol)
		if e.delay <= 0 {
			e.resolve(&res)
		}
		return res
	}

	e.cards[a].Matched = true
	e.cards[b].Matched = true
	e.matched++
	res.Emit(core.EventMatch, indexPos(b), card.Symbol)

	if e.Won() {
		res.Emit(core.EventWin, core.Pos{}, e.moves)
		res.Finish(core.OutcomeWon)
	}
	return res
}

// Advance moves the mismatch timer forward. The pending pair turns face
// down once the accumulated time reaches the delay, never earlier.
func (e *Engine) Advance(dt time.Duration) core.MoveResult {
	var res core.MoveResult
	if e.pending == nil || dt <= 0 {
		return res
	}
	e.pending.left -= dt
	if e.pending.left <= 0 {
		e.resolve(&res)
	}
	return res
}

func (e *Engine) resolve(res *core.MoveResult) {
	for _, i := range [...]int{e.pending.a, e.pending.b} {
		e.cards[i].FaceUp = false
		res.Emit(core.EventHide, indexPos(i), e.cards[i].Symbol)
	}
	e.pending = nil
}

// indexPos encodes a deck index as an event position.
func indexPos(i int) core.Pos { return core.Pos{Col: i} }

// CanFlip reports whether a card may be turned now.
func (e *Engine) CanFlip() bool { return e.pending == nil && !e.Won() }

// Pending reports whether a mismatched pair is waiting to be turned back.
func (e *Engine) Pending() bool { return e.pending != nil }

// Card returns card i.
func (e *Engine) Card(i int) Card { return e.cards[i] }

// Len returns the deck size.
func (e *Engine) Len() int { return len(e.cards) }

// Pairs returns the number of pairs in the deck.
func (e *Engine) Pairs() int { return e.pairs }

// MatchedPairs returns the number of pairs found so far.
func (e *Engine) MatchedPairs() int { return e.matched }

// Moves returns the number of completed turns (pairs turned over).
func (e *Engine) Moves() int { return e.moves }

// Won reports whether every pair is matched.
func (e *Engine) Won() bool { return e.matched == e.pairs }

// Difficulty returns the difficulty key.
func (e *Engine) Difficulty() config.Difficulty { return e.difficulty }
