package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/janpfeifer/GoDobble/internal/config"
	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/janpfeifer/GoDobble/internal/session"
	"k8s.io/klog/v2"
)

// DefaultTickInterval is the countdown resolution: one tick per second.
const DefaultTickInterval = time.Second

// ServerState holds the configuration and the registry of connected players.
// Each player owns its game exclusively; the mutex only guards the registry.
type ServerState struct {
	Address      string
	Config       *config.Config
	TickInterval time.Duration

	mu      sync.RWMutex
	players map[string]*player
	nextID  int
}

func NewServerState(cfg *config.Config) *ServerState {
	return &ServerState{
		Config:       cfg,
		TickInterval: DefaultTickInterval,
		players:      make(map[string]*player),
	}
}

// NumPlayers returns the number of connected players.
func (s *ServerState) NumPlayers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *ServerState) register(p *player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.id = fmt.Sprintf("p%d", s.nextID)
	s.players[p.id] = p
	klog.Infof("Player %s connected (%d connected)", p.id, len(s.players))
}

func (s *ServerState) unregister(p *player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, p.id)
	klog.Infof("Player %s disconnected (%d connected)", p.id, len(s.players))
}

// newSession creates a game session with the server defaults overridden by the client settings.
func (s *ServerState) newSession(settings game.Settings) (*session.Session, error) {
	cfg := s.Config.WithSettings(settings)
	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	rng, err := cfg.NewRNG()
	if err != nil {
		return nil, err
	}
	return session.New(opts, rng)
}

// HandleRound serves a freshly dealt and laid out round as JSON.
// Query parameters card_size, alphabet and layout override the defaults.
func (s *ServerState) HandleRound(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	settings := game.Settings{
		Alphabet: q.Get("alphabet"),
		Layout:   q.Get("layout"),
	}
	if v := q.Get("card_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid card_size %q", v), http.StatusBadRequest)
			return
		}
		settings.CardSize = n
	}

	sess, err := s.newSession(settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.roundMessage(sess)); err != nil {
		klog.Errorf("HandleRound: failed to encode round: %v", err)
	}
}

func (s *ServerState) roundMessage(sess *session.Session) game.RoundMessage {
	v := sess.View()
	return game.RoundMessage{
		RoundID:  v.RoundID,
		Width:    s.Config.Width,
		Height:   s.Config.Height,
		Cards:    v.Cards,
		Score:    v.Score,
		TimeLeft: v.TimeLeft,
	}
}
