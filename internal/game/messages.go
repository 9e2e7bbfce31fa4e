package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeStart    MessageType = "start"    // Client starts a game, optionally with custom settings
	MsgTypeRestart  MessageType = "restart"  // Client restarts after the game ended
	MsgTypeClick    MessageType = "click"    // Client clicked somewhere on the canvas
	MsgTypeRound    MessageType = "round"    // Server sends a new round, laid out and ready to draw
	MsgTypeResult   MessageType = "result"   // Server sends the outcome of a click
	MsgTypeTick     MessageType = "tick"     // Server sends the countdown
	MsgTypeGameOver MessageType = "gameover" // Server announces the game ended (timeout or wrong click)
	MsgTypeError    MessageType = "error"    // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload interface{}) (WsMessage, error) {
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

// Parse unmarshals the message payload into one of the message types (StartMessage, RoundMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeStart:
		target = &StartMessage{}
	case MsgTypeRestart:
		target = &RestartMessage{}
	case MsgTypeClick:
		target = &ClickMessage{}
	case MsgTypeRound:
		target = &RoundMessage{}
	case MsgTypeResult:
		target = &ResultMessage{}
	case MsgTypeTick:
		target = &TickMessage{}
	case MsgTypeGameOver:
		target = &GameOverMessage{}
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

// Settings a client may request for its game. Zero values mean "use the server default".
type Settings struct {
	CardSize  int    `json:"card_size,omitempty"`
	Alphabet  string `json:"alphabet,omitempty"`  // "letters", "digits:N" or the symbols themselves
	Layout    string `json:"layout,omitempty"`    // "ring" or "scatter"
	Mismatch  string `json:"mismatch,omitempty"`  // "ignore" or "end"
	Countdown int    `json:"countdown,omitempty"` // Seconds, -1 disables it
}

// StartMessage is the payload for MsgTypeStart
type StartMessage struct {
	Settings Settings `json:"settings"`
}

// RestartMessage: empty.
type RestartMessage struct{}

// ClickMessage is the payload for MsgTypeClick
type ClickMessage struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoundMessage is the payload for MsgTypeRound
type RoundMessage struct {
	RoundID  int          `json:"round_id"`
	Width    float64      `json:"width"`  // Canvas size
	Height   float64      `json:"height"` // Canvas size
	Cards    []CardLayout `json:"cards"`
	Score    int          `json:"score"`
	TimeLeft int          `json:"time_left"` // Seconds, 0 if there is no countdown
}

// ResultMessage is the payload for MsgTypeResult
type ResultMessage struct {
	Outcome string `json:"outcome"` // "match", "mismatch" or "miss"
	Hit     *Hit   `json:"hit,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Score   int    `json:"score"`
}

// TickMessage is the payload for MsgTypeTick
type TickMessage struct {
	RoundID  int `json:"round_id"`
	TimeLeft int `json:"time_left"`
}

// GameOverMessage is the payload for MsgTypeGameOver
type GameOverMessage struct {
	Reason string `json:"reason"` // "timeout" or "mismatch"
	Score  int    `json:"score"`
	Common string `json:"common"` // The symbol the player was looking for
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
