package game

import (
	"fmt"
	"math"
	"strings"
)

// Symbol is one drawable item on a card: an opaque ID (a letter, a number) and
// the size it is rendered at, which determines how much room it needs on the card.
type Symbol struct {
	ID   string  `json:"id"`
	Size float64 `json:"size"`
}

func (s Symbol) String() string { return s.ID }

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polar returns the point at the given angle (radians) and distance from p.
func (p Point) Polar(angle, dist float64) Point {
	return Point{X: p.X + dist*math.Cos(angle), Y: p.Y + dist*math.Sin(angle)}
}

// Placement is a symbol positioned on a card.
type Placement struct {
	Symbol   Symbol `json:"symbol"`
	Position Point  `json:"position"`

	// Fallback is set when the symbol couldn't be placed without overlap and was
	// pushed to the card's edge instead.
	Fallback bool `json:"fallback,omitempty"`
}

// CardSide identifies one of the two cards of a round.
type CardSide int

const (
	Left CardSide = iota
	Right
)

func (s CardSide) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("CardSide(%d)", int(s))
}

// CardLayout is a card ready to be drawn: its circle and the placed symbols.
type CardLayout struct {
	Side       CardSide    `json:"side"`
	Center     Point       `json:"center"`
	Radius     float64     `json:"radius"`
	Placements []Placement `json:"placements"`
}

// Contains reports whether p falls inside the card's circle.
func (c *CardLayout) Contains(p Point) bool {
	return c.Center.Dist(p) <= c.Radius
}

// Hit identifies a clicked symbol: which card, and the index into its placements.
type Hit struct {
	Side  CardSide `json:"side"`
	Index int      `json:"index"`
}

// Round holds the two cards being compared and the one symbol they share.
type Round struct {
	Left   []Symbol `json:"left"`
	Right  []Symbol `json:"right"`
	Common Symbol   `json:"common"`
}

// Card returns the symbols of the given side.
func (r *Round) Card(side CardSide) []Symbol {
	if side == Right {
		return r.Right
	}
	return r.Left
}

// IsCommon reports whether s is the round's common symbol.
func (r *Round) IsCommon(s Symbol) bool {
	return IsCommon(r, s)
}

// IsCommon reports whether s is the common symbol of the round.
// Only IDs are compared, the render size is irrelevant.
func IsCommon(r *Round, s Symbol) bool {
	return r != nil && r.Common.ID == s.ID
}

func (r *Round) String() string {
	ids := func(symbols []Symbol) string {
		parts := make([]string, len(symbols))
		for i, s := range symbols {
			parts[i] = s.ID
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprintf("Round: left=[%s], right=[%s], common=%s", ids(r.Left), ids(r.Right), r.Common.ID)
}
