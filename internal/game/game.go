// Package game holds the rules of the pairs game: the deck, the engine that
// turns clicks into reveal/match/flip-back transitions, and the session that
// owns the mismatch timer.
package game

import "time"

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"

// DefaultSymbolCount is the number of distinct symbols in a deck, so a board
// has 2*DefaultSymbolCount cards.
const DefaultSymbolCount = 4

// DefaultMismatchDelay is how long a mismatched pair stays face-up.
const DefaultMismatchDelay = 1000 * time.Millisecond

// NumSymbolImages is the number of symbol images shipped under web/images.
const NumSymbolImages = 57
