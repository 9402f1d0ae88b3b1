package eval

import (
	"math/rand"

	"github.com/kestrelchess/kestrel/pkg/board"
)

// Ordering assigns a move ordering priority: an MVV/LVA-style term for captures (eight times the
// victim's value minus the attacker's, so cheaper attackers of the same victim are tried first), a
// promotion bonus of a fixed base plus the promoted piece's middlegame value, and a small random
// jitter so that otherwise-equal moves don't always search in the same order across runs.
type Ordering struct {
	rand *rand.Rand
}

// NewOrdering builds an Ordering seeded for reproducible jitter.
func NewOrdering(seed int64) *Ordering {
	return &Ordering{rand: rand.New(rand.NewSource(seed))}
}

const (
	captureBase   = 10_000
	promotionBase = 8_000
)

// Priority returns m's move ordering rank -- higher sorts first.
func (o *Ordering) Priority(m board.Move) board.MoveRank {
	var score int

	if m.IsCapture {
		victim := m.CapturedType.MiddlegameValue()
		attacker := m.PieceType.MiddlegameValue()
		score += captureBase + victim*8 - attacker
	}
	if m.IsPromotion() {
		score += promotionBase + m.Promotion.MiddlegameValue()
	}

	score += o.rand.Intn(21) - 10 // +/-10 centipawn jitter.

	return board.MoveRank(score)
}
