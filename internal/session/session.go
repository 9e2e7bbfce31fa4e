// Package session implements the game state machine: it deals rounds, lays out
// the cards, resolves clicks and runs the countdown.
//
// A Session is not safe for concurrent use: it is meant to be owned by a single
// goroutine that feeds it clicks and ticks one at a time.
package session

import (
	"fmt"
	"slices"

	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/janpfeifer/GoDobble/internal/layout"
	"k8s.io/klog/v2"
)

// Phase of the game.
type Phase int

const (
	// PhaseAwaitingInput is the normal state: a round is displayed and clicks are accepted.
	PhaseAwaitingInput Phase = iota
	// PhaseMismatch is terminal: the player clicked a wrong symbol (only with MismatchEnd).
	PhaseMismatch
	// PhaseTimeout is terminal: the countdown reached zero.
	PhaseTimeout
)

// Terminal returns whether the game is over. Only Restart leaves a terminal phase.
func (p Phase) Terminal() bool {
	return p != PhaseAwaitingInput
}

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseMismatch:
		return "mismatch"
	case PhaseTimeout:
		return "timeout"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Outcome of an input event.
type Outcome int

const (
	// OutcomeIgnored: the event had no effect (game over, or a stale tick).
	OutcomeIgnored Outcome = iota
	// OutcomeMiss: the click didn't land on any symbol.
	OutcomeMiss
	// OutcomeMatch: the common symbol was clicked, a new round was dealt.
	OutcomeMatch
	// OutcomeMismatch: a wrong symbol was clicked.
	OutcomeMismatch
	// OutcomeTick: the countdown advanced.
	OutcomeTick
	// OutcomeTimeout: the countdown reached zero.
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMiss:
		return "miss"
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeTick:
		return "tick"
	case OutcomeTimeout:
		return "timeout"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result reports what an input event did.
type Result struct {
	Outcome Outcome
	Hit     *game.Hit   // Clicked symbol, if any.
	Symbol  game.Symbol // Clicked symbol, if any.
	Phase   Phase       // Phase after the event.
	Score   int
}

// View is a read-only snapshot of the session for the rendering shell.
type View struct {
	RoundID  int
	Cards    []game.CardLayout
	Score    int
	TimeLeft int
	Phase    Phase

	// Common is only revealed once the game is over.
	Common game.Symbol
}

// Session holds the state of one game.
type Session struct {
	opts Options
	rng  game.RNG

	phase    Phase
	roundID  int
	round    game.Round
	cards    []game.CardLayout
	score    int
	timeLeft int
}

// New validates the options and deals the first round.
func New(opts Options, rng game.RNG) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &Session{opts: opts, rng: rng}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart starts a new game: score and countdown are reset and a new round is dealt.
func (s *Session) Restart() error {
	s.score = 0
	s.timeLeft = s.opts.Countdown
	s.phase = PhaseAwaitingInput
	return s.deal()
}

// deal replaces the current round with a new one.
func (s *Session) deal() error {
	round, err := s.opts.Generator(s.rng)
	if err != nil {
		return fmt.Errorf("generate round: %w", err)
	}
	leftCenter, rightCenter := s.opts.Centers()
	s.cards = []game.CardLayout{
		{Side: game.Left, Center: leftCenter, Radius: s.opts.Radius,
			Placements: layout.LayoutCard(leftCenter, s.opts.Radius, round.Left, s.opts.Strategy, s.rng)},
		{Side: game.Right, Center: rightCenter, Radius: s.opts.Radius,
			Placements: layout.LayoutCard(rightCenter, s.opts.Radius, round.Right, s.opts.Strategy, s.rng)},
	}
	s.round = round
	s.roundID++
	if s.opts.CountdownScope == ScopeRound {
		s.timeLeft = s.opts.Countdown
	}
	klog.V(1).Infof("Session: round %d dealt, %s", s.roundID, &s.round)
	return nil
}

// Click resolves a click at canvas position p.
func (s *Session) Click(p game.Point) (Result, error) {
	if s.phase.Terminal() {
		return s.result(OutcomeIgnored), nil
	}
	hit, ok := layout.HitTest(s.cards, p)
	if !ok {
		return s.result(OutcomeMiss), nil
	}
	return s.ClickSymbol(hit)
}

// ClickSymbol handles a click on an already identified symbol.
// An error is only returned if a new round could not be dealt.
func (s *Session) ClickSymbol(hit game.Hit) (Result, error) {
	if s.phase.Terminal() {
		return s.result(OutcomeIgnored), nil
	}
	card := s.card(hit.Side)
	if card == nil || hit.Index < 0 || hit.Index >= len(card.Placements) {
		return s.result(OutcomeMiss), nil
	}
	symbol := card.Placements[hit.Index].Symbol

	var outcome Outcome
	if game.IsCommon(&s.round, symbol) {
		outcome = OutcomeMatch
		s.score += s.opts.PointsPerMatch
		if err := s.deal(); err != nil {
			return Result{}, err
		}
	} else {
		outcome = OutcomeMismatch
		if s.opts.Mismatch == MismatchEnd {
			s.phase = PhaseMismatch
		}
	}
	r := s.result(outcome)
	r.Hit = &hit
	r.Symbol = symbol
	return r, nil
}

// Tick advances the countdown by one. Ticks for any round but the current
// one are stale and ignored, as are ticks when no countdown is configured.
func (s *Session) Tick(roundID int) Result {
	if s.phase.Terminal() || s.opts.Countdown == 0 || roundID != s.roundID {
		return s.result(OutcomeIgnored)
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		return s.result(OutcomeTick)
	}
	s.timeLeft = 0
	s.phase = PhaseTimeout
	return s.result(OutcomeTimeout)
}

// RoundID identifies the current round; it increases with each new round.
func (s *Session) RoundID() int { return s.roundID }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// HasCountdown returns whether rounds are timed.
func (s *Session) HasCountdown() bool { return s.opts.Countdown > 0 }

// IsCommon reports whether symbol is the current round's common symbol.
func (s *Session) IsCommon(symbol game.Symbol) bool {
	return game.IsCommon(&s.round, symbol)
}

// View returns a snapshot of the session. Changes to it don't affect the session.
func (s *Session) View() View {
	cards := make([]game.CardLayout, len(s.cards))
	for i, card := range s.cards {
		card.Placements = slices.Clone(card.Placements)
		cards[i] = card
	}
	v := View{
		RoundID:  s.roundID,
		Cards:    cards,
		Score:    s.score,
		TimeLeft: s.timeLeft,
		Phase:    s.phase,
	}
	if s.phase.Terminal() {
		v.Common = s.round.Common
	}
	return v
}

func (s *Session) card(side game.CardSide) *game.CardLayout {
	for i := range s.cards {
		if s.cards[i].Side == side {
			return &s.cards[i]
		}
	}
	return nil
}

func (s *Session) result(outcome Outcome) Result {
	return Result{Outcome: outcome, Phase: s.phase, Score: s.score}
}
