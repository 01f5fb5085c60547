package game

import "slices"

// Engine is the pairs game state machine: it owns the deck, the face-up
// unresolved positions and the matched positions.
//
// Engine has no clock: a mismatched pair stays revealed until FlipBack is
// called, see Session for the timed version.
// It is not safe for concurrent use.
type Engine struct {
	deck     Deck
	revealed []int // At most 2 positions, in click order.
	matched  map[int]bool
}

// New creates an engine with a freshly shuffled deck of the given distinct symbols.
func New(symbols []int) *Engine {
	return NewWithDeck(NewDeck(symbols))
}

// NewWithDeck creates an engine for a fixed deck.
func NewWithDeck(deck Deck) *Engine {
	return &Engine{
		deck:     deck,
		revealed: make([]int, 0, 2),
		matched:  make(map[int]bool, len(deck)),
	}
}

// Deck returns the engine's deck. It must not be modified.
func (e *Engine) Deck() Deck { return e.deck }

// Len returns the number of positions on the board.
func (e *Engine) Len() int { return len(e.deck) }

// Click reveals the card at position, and resolves the pair if it was the second card.
//
// The click is ignored if two cards are already up, if position is already
// revealed or matched, or if it is out of range.
func (e *Engine) Click(position int) Transition {
	if position < 0 || position >= len(e.deck) ||
		len(e.revealed) >= 2 ||
		slices.Contains(e.revealed, position) ||
		e.matched[position] {
		return Ignored
	}
	e.revealed = append(e.revealed, position)
	if len(e.revealed) < 2 {
		return TurnedUp
	}
	return e.resolve()
}

// resolve compares the two revealed cards: a match moves them to the matched set,
// a mismatch leaves them up for FlipBack.
func (e *Engine) resolve() Transition {
	first, second := e.revealed[0], e.revealed[1]
	if e.deck[first].FaceID != e.deck[second].FaceID {
		return PairMismatched
	}
	e.matched[first] = true
	e.matched[second] = true
	e.revealed = e.revealed[:0]
	return PairMatched
}

// PendingPair returns the mismatched pair waiting to be flipped back, if any.
func (e *Engine) PendingPair() (Pair, bool) {
	if len(e.revealed) != 2 {
		return Pair{}, false
	}
	return Pair{e.revealed[0], e.revealed[1]}, true
}

// FlipBack hides the mismatched pair.
// It only acts if the revealed cards are still exactly pair, in the same order,
// and returns whether anything changed.
func (e *Engine) FlipBack(pair Pair) bool {
	current, ok := e.PendingPair()
	if !ok || current != pair {
		return false
	}
	e.revealed = e.revealed[:0]
	return true
}

// State returns the state of the card at position. Out of range positions are Hidden.
func (e *Engine) State(position int) CardState {
	switch {
	case e.matched[position]:
		return Matched
	case slices.Contains(e.revealed, position):
		return Revealed
	default:
		return Hidden
	}
}

// Revealed returns a copy of the face-up unresolved positions, in click order.
func (e *Engine) Revealed() []int {
	return slices.Clone(e.revealed)
}

// Matched returns the matched positions, sorted.
func (e *Engine) Matched() []int {
	matched := make([]int, 0, len(e.matched))
	for pos := range e.matched {
		matched = append(matched, pos)
	}
	slices.Sort(matched)
	return matched
}

// IsComplete returns true once every position has been matched.
func (e *Engine) IsComplete() bool {
	return len(e.deck) > 0 && len(e.matched) == len(e.deck)
}

// Views returns the client-facing card list. Hidden cards do not expose their face.
func (e *Engine) Views() []CardView {
	views := make([]CardView, len(e.deck))
	for i, card := range e.deck {
		views[i] = CardView{Position: card.Position, State: e.State(card.Position)}
		if views[i].State != Hidden {
			face := card.FaceID
			views[i].FaceID = &face
		}
	}
	return views
}
