package memorygame

import (
	"math/rand"
	"testing"
	"time"

	"mindcare/internal/timer"
)

// inOrder leaves the deck unshuffled: card i pairs with card i+len(symbols).
type inOrder struct{}

func (inOrder) Intn(n int) int { return n - 1 }

func newOrderedGame() (*Game, *timer.Manual) {
	clock := timer.NewManual()
	return New(nil, inOrder{}, clock), clock
}

func TestDeckPairsEverySymbol(t *testing.T) {
	game := New(nil, rand.New(rand.NewSource(7)), timer.NewManual())
	state := game.State()

	if len(state.Cards) != 2*len(DefaultSymbols) {
		t.Fatalf("expected %d cards, got %d", 2*len(DefaultSymbols), len(state.Cards))
	}
	counts := map[string]int{}
	for i, card := range state.Cards {
		if card.ID != i {
			t.Fatalf("card at %d has id %d", i, card.ID)
		}
		if card.Visible() {
			t.Fatalf("card %d dealt face up", i)
		}
		counts[card.Value]++
	}
	for _, symbol := range DefaultSymbols {
		if counts[symbol] != 2 {
			t.Fatalf("symbol %s appears %d times", symbol, counts[symbol])
		}
	}
	if state.Solved || state.Moves != 0 {
		t.Fatalf("fresh deck must be unsolved with no moves: %+v", state)
	}
}

func TestMatchingPairStaysUp(t *testing.T) {
	game, clock := newOrderedGame()

	if !game.Flip(0) || !game.Flip(8) {
		t.Fatal("expected both flips to be accepted")
	}
	state := game.State()
	if !state.Cards[0].Matched || !state.Cards[8].Matched || len(state.Selected) != 0 || state.Moves != 1 {
		t.Fatalf("unexpected state after match %+v", state)
	}
	if clock.Pending() != 0 {
		t.Fatal("a match must not schedule a flip-back")
	}
	if game.Flip(0) {
		t.Fatal("matched card must not flip")
	}
}

func TestMismatchFlipsBackAfterDelay(t *testing.T) {
	game, clock := newOrderedGame()

	game.Flip(0)
	if game.Flip(0) {
		t.Fatal("face-up card must not flip again")
	}
	game.Flip(1)
	if game.Flip(2) {
		t.Fatal("a third card must wait for the pair to settle")
	}

	clock.Advance(MismatchDelay - time.Millisecond)
	state := game.State()
	if !state.Cards[0].FaceUp || !state.Cards[1].FaceUp || state.Moves != 1 {
		t.Fatalf("pair turned back early %+v", state)
	}

	clock.Advance(time.Millisecond)
	state = game.State()
	if state.Cards[0].FaceUp || state.Cards[1].FaceUp || len(state.Selected) != 0 {
		t.Fatalf("pair should be face down %+v", state)
	}
	if state.Moves != 1 {
		t.Fatalf("expected 1 move, got %d", state.Moves)
	}
	if !game.Flip(2) {
		t.Fatal("flipping must resume after the pair settles")
	}
}

func TestResetDropsPendingFlipBack(t *testing.T) {
	game, clock := newOrderedGame()

	game.Flip(0)
	game.Flip(1)
	game.Reset()
	if clock.Pending() != 0 {
		t.Fatalf("reset must cancel the flip-back, %d pending", clock.Pending())
	}

	game.Flip(3)
	clock.Advance(time.Second)
	state := game.State()
	if !state.Cards[3].FaceUp || state.Moves != 0 || len(state.Selected) != 1 {
		t.Fatalf("old flip-back touched the new deck %+v", state)
	}

	// A callback that fired despite cancellation is still ignored.
	game.hidePair(game.generation-1, 3, 4)
	if !game.State().Cards[3].FaceUp {
		t.Fatal("stale flip-back applied")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	game, _ := newOrderedGame()
	game.Flip(0)
	game.Flip(8)

	game.Reset()
	first := game.State()
	game.Reset()
	second := game.State()

	for _, state := range []State{first, second} {
		if state.Moves != 0 || len(state.Selected) != 0 || state.Solved {
			t.Fatalf("unexpected state after reset %+v", state)
		}
		for _, card := range state.Cards {
			if card.Visible() {
				t.Fatalf("card %d visible after reset", card.ID)
			}
		}
	}
}

func TestSolvingTheBoard(t *testing.T) {
	game, _ := newOrderedGame()
	n := len(DefaultSymbols)
	for i := 0; i < n; i++ {
		if game.Solved() {
			t.Fatalf("solved after %d pairs", i)
		}
		game.Flip(i)
		game.Flip(i + n)
	}
	if !game.Solved() || game.Moves() != n {
		t.Fatalf("expected solved in %d moves, got %+v", n, game.State())
	}
}

func TestRepeatedSymbolsStillDealPairs(t *testing.T) {
	game := New([]string{"🙂", "🌟", "🙂", "🌟", "🎯"}, inOrder{}, timer.NewManual())
	cards := game.State().Cards
	if len(cards) != 6 {
		t.Fatalf("expected 3 pairs, got %d cards", len(cards))
	}
	counts := map[string]int{}
	for _, card := range cards {
		counts[card.Value]++
	}
	for value, n := range counts {
		if n != 2 {
			t.Fatalf("symbol %s appears %d times", value, n)
		}
	}
}

func TestCanFlipMatchesFlip(t *testing.T) {
	game, _ := newOrderedGame()

	if game.CanFlip(-1) || game.CanFlip(16) {
		t.Fatal("out of range ids must not be flippable")
	}
	if !game.CanFlip(0) || !game.Flip(0) {
		t.Fatal("expected card 0 to flip")
	}
	if game.CanFlip(0) {
		t.Fatal("a face-up card must not be flippable")
	}
	if !game.Flip(8) || game.CanFlip(8) {
		t.Fatal("a matched card must not be flippable")
	}
	if state := game.State(); len(state.Selected) != 0 {
		t.Fatalf("CanFlip must not change the selection: %+v", state.Selected)
	}
}
