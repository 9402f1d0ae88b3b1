package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
)

// deltaMargin bounds how much the best plausible capture in the position could still swing the
// score: if even a queen's worth of material on top of the stand-pat score can't reach alpha, the
// whole node is hopeless and every capture in it is pruned without trying any of them.
const deltaMargin = eval.Score(900)

// quiescence extends the search along capturing and promoting moves only, until the position is
// "quiet", to avoid misjudging a position in the middle of a capture sequence (the horizon
// effect). It always first considers the stand-pat score -- not moving at all -- since a side
// is never forced to capture.
func (r *run) quiescence(ctx context.Context, ply int, alpha, beta eval.Score) eval.Score {
	if isClosed(r.quit) {
		return eval.Draw
	}

	standPat := eval.Unit(r.b.Turn()) * eval.Evaluate(r.b)
	if standPat >= beta {
		return standPat
	}
	if standPat+deltaMargin < alpha {
		return alpha // delta pruning: no capture in this position can plausibly reach alpha.
	}
	alpha = eval.Max(alpha, standPat)

	for _, m := range quiescenceMoves(r.b) {
		if !r.b.MakeMove(m) {
			continue
		}
		r.nodes++
		score := -r.quiescence(ctx, ply+1, -beta, -alpha)
		r.b.UnmakeMove()

		if score >= beta {
			return score
		}
		alpha = eval.Max(alpha, score)
	}

	return alpha
}

// quiescenceMoves returns the side to move's pseudo-legal captures and promotions, ordered
// MVV/LVA-first so that a beta cutoff triggers as early as possible.
func quiescenceMoves(b *board.Board) []board.Move {
	all := b.PseudoLegalMoves()
	out := make([]board.Move, 0, len(all))
	for _, m := range all {
		if m.IsCapture || m.IsPromotion() {
			out = append(out, m)
		}
	}
	board.RankSort(out, func(m board.Move) board.MoveRank {
		return board.MoveRank(m.CapturedType.MiddlegameValue()*8 - m.PieceType.MiddlegameValue())
	})
	return out
}
