package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/janpfeifer/GoDobble/internal/session"
	"k8s.io/klog/v2"
)

const writeTimeout = 5 * time.Second

var errNoGame = errors.New("no game started")

// player is one websocket connection and the game it plays.
//
// All of its fields are owned by the HandleWS goroutine: clicks and countdown
// ticks are handled one at a time, each to completion.
type player struct {
	id     string
	server *ServerState
	conn   *websocket.Conn
	game   *session.Session

	// ticker drives the countdown of the round tickRound.
	ticker    *time.Ticker
	tickRound int
}

// HandleWS upgrades the connection and runs the game loop until the client leaves.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: failed to accept websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	p := &player{server: s, conn: conn}
	s.register(p)
	defer s.unregister(p)
	defer p.stopCountdown()

	messages := make(chan game.WsMessage)
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg game.WsMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				readErr <- err
				return
			}
			select {
			case messages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case err = <-readErr:
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				klog.V(1).Infof("Player %s: read error: %v", p.id, err)
			}
			return
		case msg := <-messages:
			err = p.handleMessage(ctx, msg)
		case <-p.ticks():
			err = p.tick(ctx)
		}
		if err != nil {
			klog.Errorf("Player %s: %v", p.id, err)
			return
		}
	}
}

// handleMessage processes one client message. Game errors are reported to the
// client; only failures to write to the connection are returned.
func (p *player) handleMessage(ctx context.Context, msg game.WsMessage) error {
	parsed, err := msg.Parse()
	if err != nil {
		return p.sendError(ctx, fmt.Sprintf("invalid message: %v", err))
	}

	switch m := parsed.(type) {
	case *game.StartMessage:
		sess, err := p.server.newSession(m.Settings)
		if err != nil {
			klog.Warningf("Player %s: can't start game with %+v: %v", p.id, m.Settings, err)
			return p.sendError(ctx, err.Error())
		}
		p.game = sess
		klog.Infof("Player %s: game started", p.id)
		return p.sendRound(ctx)

	case *game.RestartMessage:
		if p.game == nil {
			return p.sendError(ctx, errNoGame.Error())
		}
		if err := p.game.Restart(); err != nil {
			return p.sendError(ctx, err.Error())
		}
		return p.sendRound(ctx)

	case *game.ClickMessage:
		if p.game == nil {
			return p.sendError(ctx, errNoGame.Error())
		}
		result, err := p.game.Click(game.Point{X: m.X, Y: m.Y})
		if err != nil {
			return p.sendError(ctx, err.Error())
		}
		return p.sendResult(ctx, result)
	}

	return p.sendError(ctx, fmt.Sprintf("unexpected message type %q", msg.Type))
}

func (p *player) sendResult(ctx context.Context, result session.Result) error {
	if result.Outcome == session.OutcomeIgnored {
		return nil
	}
	msg := game.ResultMessage{
		Outcome: result.Outcome.String(),
		Hit:     result.Hit,
		Symbol:  result.Symbol.ID,
		Score:   result.Score,
	}
	if err := p.send(ctx, game.MsgTypeResult, msg); err != nil {
		return err
	}
	switch {
	case result.Outcome == session.OutcomeMatch:
		return p.sendRound(ctx)
	case result.Phase.Terminal():
		return p.sendGameOver(ctx)
	}
	return nil
}

// sendRound sends the current round and restarts the countdown for it.
func (p *player) sendRound(ctx context.Context) error {
	p.startCountdown()
	return p.send(ctx, game.MsgTypeRound, p.server.roundMessage(p.game))
}

func (p *player) sendGameOver(ctx context.Context) error {
	p.stopCountdown()
	v := p.game.View()
	klog.Infof("Player %s: game over (%s), score %d", p.id, v.Phase, v.Score)
	return p.send(ctx, game.MsgTypeGameOver, game.GameOverMessage{
		Reason: v.Phase.String(),
		Score:  v.Score,
		Common: v.Common.ID,
	})
}

func (p *player) tick(ctx context.Context) error {
	result := p.game.Tick(p.tickRound)
	switch result.Outcome {
	case session.OutcomeTick, session.OutcomeTimeout:
		if err := p.send(ctx, game.MsgTypeTick, game.TickMessage{RoundID: p.tickRound, TimeLeft: p.game.View().TimeLeft}); err != nil {
			return err
		}
	}
	if result.Outcome == session.OutcomeTimeout {
		return p.sendGameOver(ctx)
	}
	return nil
}

// startCountdown cancels any pending countdown and starts one bound to the current round,
// so no tick of a previous round can reach the new one.
func (p *player) startCountdown() {
	p.stopCountdown()
	if p.game == nil || !p.game.HasCountdown() {
		return
	}
	p.tickRound = p.game.RoundID()
	p.ticker = time.NewTicker(p.server.TickInterval)
}

func (p *player) stopCountdown() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
}

// ticks returns the countdown channel, or nil (blocks forever) if there is no countdown.
func (p *player) ticks() <-chan time.Time {
	if p.ticker == nil {
		return nil
	}
	return p.ticker.C
}

func (p *player) send(ctx context.Context, msgType game.MessageType, payload any) error {
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, p.conn, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msgType, err)
	}
	return nil
}

func (p *player) sendError(ctx context.Context, message string) error {
	return p.send(ctx, game.MsgTypeError, game.ErrorMessage{Message: message})
}
