package game

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// A and B symbols used by the scenario decks.
const (
	symA = 10
	symB = 20
)

func checkSets(t *testing.T, e *Engine, wantRevealed, wantMatched []int) {
	t.Helper()
	if got := e.Revealed(); !slices.Equal(got, wantRevealed) {
		t.Errorf("Revealed: got %v, want %v", got, wantRevealed)
	}
	if got := e.Matched(); !slices.Equal(got, wantMatched) {
		t.Errorf("Matched: got %v, want %v", got, wantMatched)
	}
}

func TestMatchScenario(t *testing.T) {
	e := NewWithDeck(deckFromFaces([]int{symA, symB, symA, symB}))

	if got := e.Click(0); got != TurnedUp {
		t.Fatalf("Click(0): got %s, want %s", got, TurnedUp)
	}
	checkSets(t, e, []int{0}, []int{})

	if got := e.Click(2); got != PairMatched {
		t.Fatalf("Click(2): got %s, want %s", got, PairMatched)
	}
	checkSets(t, e, []int{}, []int{0, 2})
	if e.IsComplete() {
		t.Errorf("Game should not be complete with 2 of 4 cards matched")
	}

	e.Click(1)
	checkSets(t, e, []int{1}, []int{0, 2})
	if got := e.Click(3); got != PairMatched {
		t.Fatalf("Click(3): got %s, want %s", got, PairMatched)
	}
	checkSets(t, e, []int{}, []int{0, 1, 2, 3})
	if !e.IsComplete() {
		t.Errorf("Game should be complete")
	}

	// Terminal state: every click is ignored.
	for pos := range 4 {
		if got := e.Click(pos); got != Ignored {
			t.Errorf("Click(%d) after completion: got %s, want %s", pos, got, Ignored)
		}
	}
}

func TestMismatchScenario(t *testing.T) {
	e := NewWithDeck(deckFromFaces([]int{symA, symB, symB, symA}))

	e.Click(0)
	if got := e.Click(1); got != PairMismatched {
		t.Fatalf("Click(1): got %s, want %s", got, PairMismatched)
	}
	// Both stay up until flipped back.
	checkSets(t, e, []int{0, 1}, []int{})
	pair, ok := e.PendingPair()
	if !ok || pair != (Pair{0, 1}) {
		t.Fatalf("PendingPair: got %v, %t, want [0 1], true", pair, ok)
	}

	// Third click while two cards are up is ignored.
	if got := e.Click(2); got != Ignored {
		t.Errorf("Click(2) with a pending pair: got %s, want %s", got, Ignored)
	}
	checkSets(t, e, []int{0, 1}, []int{})

	if !e.FlipBack(pair) {
		t.Fatalf("FlipBack(%v) should apply", pair)
	}
	checkSets(t, e, []int{}, []int{})
	if _, ok := e.PendingPair(); ok {
		t.Errorf("No pair should be pending after FlipBack")
	}
}

func TestClickIgnored(t *testing.T) {
	e := NewWithDeck(deckFromFaces([]int{symA, symB, symA, symB}))
	e.Click(0)
	e.Click(2) // Match {0, 2}.
	e.Click(1)

	for _, pos := range []int{0, 2, 1, -1, 4, 100} {
		if got := e.Click(pos); got != Ignored {
			t.Errorf("Click(%d): got %s, want %s", pos, got, Ignored)
		}
		checkSets(t, e, []int{1}, []int{0, 2})
	}
}

func TestFlipBackStale(t *testing.T) {
	e := NewWithDeck(deckFromFaces([]int{symA, symB, symB, symA}))

	// Nothing pending.
	if e.FlipBack(Pair{0, 1}) {
		t.Errorf("FlipBack with nothing revealed should not apply")
	}

	e.Click(0)
	e.Click(1)
	if e.FlipBack(Pair{1, 0}) {
		t.Errorf("FlipBack with the pair in the wrong order should not apply")
	}
	if e.FlipBack(Pair{0, 2}) {
		t.Errorf("FlipBack of a different pair should not apply")
	}
	checkSets(t, e, []int{0, 1}, []int{})

	if !e.FlipBack(Pair{0, 1}) {
		t.Fatalf("FlipBack of the pending pair should apply")
	}
	// A second, late, flip-back for the same pair does nothing to a newer pair.
	e.Click(1)
	e.Click(3)
	if e.FlipBack(Pair{0, 1}) {
		t.Errorf("Late FlipBack should not clobber the newer revealed cards")
	}
	checkSets(t, e, []int{1, 3}, []int{})
}

func TestViews(t *testing.T) {
	e := NewWithDeck(deckFromFaces([]int{symA, symB, symA, symB}))
	e.Click(0)
	e.Click(2)
	e.Click(3)

	want := []struct {
		state CardState
		face  int // -1 for hidden
	}{
		{Matched, symA},
		{Hidden, -1},
		{Matched, symA},
		{Revealed, symB},
	}
	views := e.Views()
	if len(views) != len(want) {
		t.Fatalf("Expected %d views, got %d", len(want), len(views))
	}
	for i, v := range views {
		if v.Position != i {
			t.Errorf("views[%d].Position=%d", i, v.Position)
		}
		if v.State != want[i].state {
			t.Errorf("views[%d].State: got %s, want %s", i, v.State, want[i].state)
		}
		if want[i].face < 0 {
			if v.FaceID != nil {
				t.Errorf("views[%d]: hidden card exposes face %d", i, *v.FaceID)
			}
			continue
		}
		if v.FaceID == nil || *v.FaceID != want[i].face {
			t.Errorf("views[%d].FaceID: got %v, want %d", i, v.FaceID, want[i].face)
		}
	}
}

// TestRandomPlay clicks random positions and checks the invariants after every click.
func TestRandomPlay(t *testing.T) {
	e := New(PickSymbols(DefaultSymbolCount))
	steps := 0
	for !e.IsComplete() && steps < 10_000 {
		steps++
		pos := rand.IntN(e.Len()+2) - 1 // Includes out of range positions.
		before := e.Matched()
		e.Click(pos)
		if pair, ok := e.PendingPair(); ok {
			e.FlipBack(pair)
		}

		revealed, matched := e.Revealed(), e.Matched()
		if len(revealed) > 2 {
			t.Fatalf("More than 2 revealed: %v", revealed)
		}
		for _, r := range revealed {
			if slices.Contains(matched, r) {
				t.Fatalf("Position %d both revealed and matched", r)
			}
		}
		for _, m := range before {
			if !slices.Contains(matched, m) {
				t.Fatalf("Matched set shrank: %v -> %v", before, matched)
			}
		}
	}
	if !e.IsComplete() {
		t.Errorf("Game not complete after %d clicks: matched=%v", steps, e.Matched())
	}
}
