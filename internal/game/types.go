package game

import (
	"fmt"
	"strings"
)

// Card is one slot of the board. Cards are immutable once the deck is built.
type Card struct {
	Position int `json:"position"`
	FaceID   int `json:"face_id"` // Symbol ID, shared by exactly two cards.
}

// CardState is what a position looks like to the player.
type CardState int

const (
	Hidden CardState = iota
	Revealed
	Matched
)

// String returns the string representation of a CardState.
func (cs CardState) String() string {
	switch cs {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler, so CardState travels as a string in JSON.
func (cs CardState) MarshalText() ([]byte, error) {
	return []byte(cs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cs *CardState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hidden":
		*cs = Hidden
	case "revealed":
		*cs = Revealed
	case "matched":
		*cs = Matched
	default:
		return fmt.Errorf("unknown card state %q", text)
	}
	return nil
}

// Transition is the result of a click.
// Ignored is the only no-op, all the others changed the engine state.
type Transition int

const (
	// Ignored: the click had no effect (board busy, position already up, or out of range).
	Ignored Transition = iota
	// TurnedUp: the first card of a pair was revealed.
	TurnedUp
	// PairMatched: the second card matched the first, both are now permanently face-up.
	PairMatched
	// PairMismatched: the second card differs from the first, both flip back after the delay.
	PairMismatched
)

func (t Transition) String() string {
	switch t {
	case Ignored:
		return "ignored"
	case TurnedUp:
		return "turned-up"
	case PairMatched:
		return "matched"
	case PairMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Applied reports whether the transition changed anything.
func (t Transition) Applied() bool { return t != Ignored }

// Pair is the two revealed positions, in click order.
type Pair [2]int

// CardView is the client-facing representation of a card.
// FaceID is only included when the card is not hidden.
type CardView struct {
	Position int       `json:"position"`
	State    CardState `json:"state"`
	FaceID   *int      `json:"face_id,omitempty"`
}

// Snapshot is the read-only projection of a session sent to the clients.
type Snapshot struct {
	GameID   string     `json:"game_id"`
	Cards    []CardView `json:"cards"`
	Revealed []int      `json:"revealed"`
	Matched  []int      `json:"matched"`
	Complete bool       `json:"complete"`
}

func (s *Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game %s: complete=%t, revealed=%v, matched=%v, cards: ", s.GameID, s.Complete, s.Revealed, s.Matched)
	for _, c := range s.Cards {
		if c.FaceID != nil {
			fmt.Fprintf(&sb, "%d:%s(%d) ", c.Position, c.State, *c.FaceID)
		} else {
			fmt.Fprintf(&sb, "%d:%s ", c.Position, c.State)
		}
	}
	return sb.String()
}
