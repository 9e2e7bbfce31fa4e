package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState manages the connection and the state of the game being played.
type GlobalClientState struct {
	Conn  *websocket.Conn
	Error string

	// Settings chosen in the Home page, sent when the game starts.
	Settings game.Settings

	// Game state, as last reported by the server.
	Round      *game.RoundMessage
	LastResult *game.ResultMessage
	GameOver   *game.GameOverMessage
	Score      int
	TimeLeft   int

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Listeners: make(map[string]func()),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// ConnectWS connects to the server, starting the read loop in the background.
func (s *GlobalClientState) ConnectWS() error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
	}

	scheme := "ws"
	if app.Window().URL().Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, app.Window().URL().Host)
	klog.Infof("ConnectWS: Connecting to %s", wsURL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}
	s.Conn = conn
	go s.readLoop(conn)
	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			break
		}

		klog.V(1).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch m := p.(type) {
	case *game.RoundMessage:
		klog.Infof("handleMessage: Round %d received", m.RoundID)
		s.Round = m
		s.Score = m.Score
		s.TimeLeft = m.TimeLeft
		s.GameOver = nil
		s.Error = ""

	case *game.ResultMessage:
		klog.Infof("handleMessage: Click result %s (symbol %q)", m.Outcome, m.Symbol)
		s.LastResult = m
		s.Score = m.Score

	case *game.TickMessage:
		if s.Round == nil || m.RoundID != s.Round.RoundID {
			return
		}
		s.TimeLeft = m.TimeLeft

	case *game.GameOverMessage:
		klog.Infof("handleMessage: Game over (%s), score %d", m.Reason, m.Score)
		s.GameOver = m
		s.Score = m.Score

	case *game.ErrorMessage:
		klog.Errorf("handleMessage: Server error: %s", m.Message)
		s.Error = m.Message

	default:
		klog.Warningf("handleMessage: Unexpected message type %s", msg.Type)
		return
	}
	s.Notify()
}

func (s *GlobalClientState) send(msgType game.MessageType, payload any) {
	if s.Conn == nil {
		return
	}
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		klog.Errorf("send: Failed to create %s message: %v", msgType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	if err := wsjson.Write(ctx, s.Conn, msg); err != nil {
		klog.Errorf("send: Failed to send %s message: %v", msgType, err)
	}
}

// SendStart starts a new game with the current settings.
func (s *GlobalClientState) SendStart() {
	s.send(game.MsgTypeStart, game.StartMessage{Settings: s.Settings})
}

// SendRestart restarts the game after it ended.
func (s *GlobalClientState) SendRestart() {
	s.send(game.MsgTypeRestart, nil)
}

// SendClick sends a click at the given canvas coordinates.
func (s *GlobalClientState) SendClick(x, y float64) {
	s.send(game.MsgTypeClick, game.ClickMessage{X: x, Y: y})
}
