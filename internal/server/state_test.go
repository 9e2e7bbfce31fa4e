package server

import (
	"context"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoDobble/internal/game"
)

// readMessage reads messages until one of the given type arrives, and returns its parsed payload.
func readMessage[T any](ctx context.Context, t *testing.T, conn *websocket.Conn, msgType game.MessageType) *T {
	t.Helper()
	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("Failed to read %s message: %v", msgType, err)
		}
		if msg.Type == game.MsgTypeError && msgType != game.MsgTypeError {
			t.Fatalf("Unexpected error message: %s", msg.Payload)
		}
		if msg.Type != msgType {
			continue
		}
		p, err := msg.Parse()
		if err != nil {
			t.Fatalf("Failed to parse %s payload: %v", msgType, err)
		}
		payload, ok := p.(*T)
		if !ok {
			t.Fatalf("Expected %T payload, got: %T", payload, p)
		}
		return payload
	}
}

func writeMessage(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType game.MessageType, payload any) {
	t.Helper()
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		t.Fatal(err)
	}
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("Failed to send %s message: %v", msgType, err)
	}
}

// leftPositions returns the position on the left card of the common symbol, and of some other symbol.
func leftPositions(t *testing.T, round *game.RoundMessage) (common, other game.Point) {
	t.Helper()
	shared := sharedSymbols(*round)
	if len(shared) != 1 {
		t.Fatalf("Expected exactly one shared symbol, got %v", shared)
	}
	for _, p := range round.Cards[0].Placements {
		if p.Symbol.ID == shared[0] {
			common = p.Position
		} else {
			other = p.Position
		}
	}
	return
}

func dial(ctx context.Context, t *testing.T, s *ServerState) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws://"+s.Address+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func TestWebsocketGame(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := startServer(t, testConfig(t))
	conn := dial(ctx, t, s)

	writeMessage(ctx, t, conn, game.MsgTypeStart, game.StartMessage{Settings: game.Settings{Layout: "ring"}})
	round := readMessage[game.RoundMessage](ctx, t, conn, game.MsgTypeRound)
	if round.RoundID != 1 || round.Score != 0 {
		t.Fatalf("Expected first round with score 0, got round %d with score %d", round.RoundID, round.Score)
	}
	if s.NumPlayers() != 1 {
		t.Errorf("Expected 1 player connected, got %d", s.NumPlayers())
	}

	// Click on empty space, then a wrong symbol: with the default policy the round goes on.
	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: 150, Y: 150})
	if result := readMessage[game.ResultMessage](ctx, t, conn, game.MsgTypeResult); result.Outcome != "miss" {
		t.Errorf("Expected a miss, got %q", result.Outcome)
	}
	common, other := leftPositions(t, round)
	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: other.X, Y: other.Y})
	if result := readMessage[game.ResultMessage](ctx, t, conn, game.MsgTypeResult); result.Outcome != "mismatch" {
		t.Errorf("Expected a mismatch, got %q", result.Outcome)
	}

	// Click the common symbol: a new round is dealt.
	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: common.X, Y: common.Y})
	result := readMessage[game.ResultMessage](ctx, t, conn, game.MsgTypeResult)
	if result.Outcome != "match" || result.Score != 10 || result.Hit == nil || result.Hit.Side != game.Left {
		t.Errorf("Expected a match on the left card with score 10, got %+v", result)
	}
	round = readMessage[game.RoundMessage](ctx, t, conn, game.MsgTypeRound)
	if round.RoundID != 2 || round.Score != 10 {
		t.Errorf("Expected round 2 with score 10, got round %d with score %d", round.RoundID, round.Score)
	}
}

func TestWebsocketMismatchEndsGame(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := startServer(t, testConfig(t))
	conn := dial(ctx, t, s)

	writeMessage(ctx, t, conn, game.MsgTypeStart, game.StartMessage{Settings: game.Settings{Layout: "ring", Mismatch: "end"}})
	round := readMessage[game.RoundMessage](ctx, t, conn, game.MsgTypeRound)
	common, other := leftPositions(t, round)

	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: other.X, Y: other.Y})
	over := readMessage[game.GameOverMessage](ctx, t, conn, game.MsgTypeGameOver)
	if over.Reason != "mismatch" || over.Common != sharedSymbols(*round)[0] {
		t.Errorf("Expected game over by mismatch revealing the common symbol, got %+v", over)
	}

	// Clicks are ignored until a restart.
	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: common.X, Y: common.Y})
	writeMessage(ctx, t, conn, game.MsgTypeRestart, nil)
	round = readMessage[game.RoundMessage](ctx, t, conn, game.MsgTypeRound)
	if round.RoundID != 2 || round.Score != 0 {
		t.Errorf("Expected a fresh round after restart, got round %d with score %d", round.RoundID, round.Score)
	}
}

func TestWebsocketErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := startServer(t, testConfig(t))
	conn := dial(ctx, t, s)

	writeMessage(ctx, t, conn, game.MsgTypeClick, game.ClickMessage{X: 1, Y: 1})
	if e := readMessage[game.ErrorMessage](ctx, t, conn, game.MsgTypeError); e.Message != errNoGame.Error() {
		t.Errorf("Expected %q, got %q", errNoGame, e.Message)
	}

	writeMessage(ctx, t, conn, game.MsgTypeStart, game.StartMessage{Settings: game.Settings{CardSize: 20}})
	if e := readMessage[game.ErrorMessage](ctx, t, conn, game.MsgTypeError); e.Message == "" {
		t.Errorf("Expected an error for an oversized card")
	}

	writeMessage(ctx, t, conn, game.MessageType("dance"), nil)
	readMessage[game.ErrorMessage](ctx, t, conn, game.MsgTypeError)
}
