package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeJoin    MessageType = "join"    // Client enters the game screen
	MsgTypeState   MessageType = "state"   // Server sends the board projection
	MsgTypeClick   MessageType = "click"   // Client clicks a card
	MsgTypeRestart MessageType = "restart" // Client wants a new deck for the same game
	MsgTypeError   MessageType = "error"   // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload any) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (JoinMessage, StateMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeJoin:
		target = &JoinMessage{}
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeClick:
		target = &ClickMessage{}
	case MsgTypeRestart:
		target = &RestartMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// JoinMessage is the payload for MsgTypeJoin.
// An empty or unknown GameID starts a new game.
type JoinMessage struct {
	GameID string `json:"game_id"`
}

// StateMessage is the payload for MsgTypeState
type StateMessage struct {
	Snapshot Snapshot `json:"snapshot"`
}

// ClickMessage is the payload for MsgTypeClick
type ClickMessage struct {
	Position int `json:"position"`
}

// RestartMessage: empty.
type RestartMessage struct{}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
