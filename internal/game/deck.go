package game

import (
	"math/rand/v2"
)

// Deck is the ordered sequence of cards on the board: deck[i].Position == i.
type Deck []Card

// NewDeck creates a deck with two cards per symbol, in a uniformly random order.
// The symbols must be distinct.
// Every call produces an independent permutation.
func NewDeck(symbols []int) Deck {
	faces := make([]int, 0, 2*len(symbols))
	for _, s := range symbols {
		faces = append(faces, s, s)
	}
	rand.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })
	return deckFromFaces(faces)
}

// deckFromFaces builds a deck with the given faces in order, numbering the positions.
func deckFromFaces(faces []int) Deck {
	deck := make(Deck, len(faces))
	for i, f := range faces {
		deck[i] = Card{Position: i, FaceID: f}
	}
	return deck
}

// PickSymbols returns count distinct symbol IDs drawn at random from [0, NumSymbolImages).
// count is clamped to [1, NumSymbolImages].
func PickSymbols(count int) []int {
	count = max(1, min(count, NumSymbolImages))
	return rand.Perm(NumSymbolImages)[:count]
}

// Faces returns the symbol of each position.
func (d Deck) Faces() []int {
	faces := make([]int, len(d))
	for i, c := range d {
		faces[i] = c.FaceID
	}
	return faces
}
