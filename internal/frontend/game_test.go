package frontend

import (
	"testing"

	"github.com/janpfeifer/GoMemory/internal/game"
)

func TestGameIDFromPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{path: "/game/abc", want: "abc"},
		{path: "/game/abc/extra", want: "abc"},
		{path: "/game/my%20game", want: "my game"},
		{path: "/game/", want: ""},
		{path: "/game", want: ""},
		{path: "/", want: ""},
		{path: "/table/abc", want: ""},
	}
	for _, tt := range tests {
		if got := GameIDFromPath(tt.path); got != tt.want {
			t.Errorf("GameIDFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCardImage(t *testing.T) {
	face := 7
	tests := []struct {
		card game.CardView
		want string
	}{
		{card: game.CardView{Position: 0, State: game.Hidden}, want: "/web/images/eye.png"},
		{card: game.CardView{Position: 1, State: game.Revealed, FaceID: &face}, want: "/web/images/symbol_07.png"},
		{card: game.CardView{Position: 2, State: game.Matched, FaceID: &face}, want: "/web/images/symbol_07.png"},
	}
	for _, tt := range tests {
		if got := CardImage(tt.card); got != tt.want {
			t.Errorf("CardImage(%+v) = %q, want %q", tt.card, got, tt.want)
		}
	}
}

func TestHandleStateMessage(t *testing.T) {
	State = nil
	InitState()
	notified := 0
	State.Listeners["test"] = func() { notified++ }

	e := game.NewWithDeck(game.Deck{{Position: 0, FaceID: 3}, {Position: 1, FaceID: 3}})
	e.Click(0)
	msg, err := game.NewWsMessage(game.MsgTypeState, game.StateMessage{Snapshot: game.Snapshot{GameID: "g", Cards: e.Views(), Revealed: e.Revealed()}})
	if err != nil {
		t.Fatalf("NewWsMessage: %v", err)
	}
	State.handleMessage(msg)

	if notified != 1 {
		t.Errorf("Expected 1 notification, got %d", notified)
	}
	if State.Snapshot == nil || State.GameID != "g" || State.Snapshot.Cards[0].State != game.Revealed {
		t.Errorf("State not updated: %+v", State.Snapshot)
	}

	errMsg, _ := game.NewWsMessage(game.MsgTypeError, game.ErrorMessage{Message: "boom"})
	State.handleMessage(errMsg)
	if State.Error != "boom" || notified != 2 {
		t.Errorf("Error not recorded: %q (notified %d)", State.Error, notified)
	}
}
