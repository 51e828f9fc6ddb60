// Package memorygame implements the card-matching game: flip two cards, keep
// them when they match, otherwise they turn back over after a short delay.
package memorygame

import (
	"math/rand"
	"sync"
	"time"

	"mindcare/internal/timer"
)

// MismatchDelay is how long an unmatched pair stays face up.
const MismatchDelay = 800 * time.Millisecond

var DefaultSymbols = []string{"🙂", "🌟", "🎯", "🧠", "📚", "🎵", "🌿", "⚡"}

// Rand supplies the shuffle. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Card struct {
	ID      int
	Value   string
	FaceUp  bool
	Matched bool
}

// Visible reports whether the card's value is shown.
func (c Card) Visible() bool {
	return c.FaceUp || c.Matched
}

type State struct {
	Cards    []Card
	Moves    int
	Selected []int
	Solved   bool
}

type Game struct {
	symbols   []string
	rng       Rand
	scheduler timer.Scheduler

	mu         sync.Mutex
	generation uint64
	cancel     timer.Cancel
	cards      []Card
	selected   []int
	moves      int
}

// New deals a shuffled deck. A nil rng seeds one from the clock; empty
// symbols use DefaultSymbols. Repeated symbols count once.
func New(symbols []string, rng Rand, scheduler timer.Scheduler) *Game {
	symbols = uniqueSymbols(symbols)
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		symbols:   symbols,
		rng:       rng,
		scheduler: scheduler,
	}
	g.cards = g.deal()
	return g
}

// deal doubles the alphabet, shuffles it with Fisher-Yates and numbers the
// cards by their final position.
func (g *Game) deal() []Card {
	values := make([]string, 0, 2*len(g.symbols))
	values = append(values, g.symbols...)
	values = append(values, g.symbols...)
	for i := len(values) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}

	cards := make([]Card, len(values))
	for i, value := range values {
		cards[i] = Card{ID: i, Value: value}
	}
	return cards
}

func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}

// CanFlip reports whether Flip(id) would be accepted now.
func (g *Game) CanFlip(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canFlipLocked(id)
}

func (g *Game) canFlipLocked(id int) bool {
	if id < 0 || id >= len(g.cards) || len(g.selected) >= 2 {
		return false
	}
	card := g.cards[id]
	return !card.Matched && !card.FaceUp
}

// Flip turns card id face up. It reports false when the flip is not allowed:
// two cards are already showing, the card is matched or face up, or the id
// is unknown.
func (g *Game) Flip(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.canFlipLocked(id) {
		return false
	}
	g.cards[id].FaceUp = true
	g.selected = append(g.selected, id)
	if len(g.selected) < 2 {
		return true
	}

	g.moves++
	a, b := g.selected[0], g.selected[1]
	if g.cards[a].Value == g.cards[b].Value {
		g.cards[a].Matched = true
		g.cards[b].Matched = true
		g.selected = nil
		return true
	}

	generation := g.generation
	g.cancel = g.scheduler.AfterFunc(MismatchDelay, func() {
		g.hidePair(generation, a, b)
	})
	return true
}

func (g *Game) hidePair(generation uint64, a, b int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if generation != g.generation {
		return
	}
	g.cards[a].FaceUp = false
	g.cards[b].FaceUp = false
	g.selected = nil
	g.cancel = nil
}

// Reset deals a new deck and clears moves and selection. A pending
// mismatch flip-back from the old deck is dropped.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.cards = g.deal()
	g.selected = nil
	g.moves = 0
}

func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

func (g *Game) Solved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.solvedLocked()
}

func (g *Game) solvedLocked() bool {
	for _, card := range g.cards {
		if !card.Matched {
			return false
		}
	}
	return true
}

// State returns a snapshot of the board.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		Cards:    append([]Card(nil), g.cards...),
		Moves:    g.moves,
		Selected: append([]int(nil), g.selected...),
		Solved:   g.solvedLocked(),
	}
}
