package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
)

// run holds the mutable state of a single negamax search from the root.
type run struct {
	tt    TranspositionTable
	order *eval.Ordering
	b     *board.Board
	quit  <-chan struct{}
	nodes uint64
}

// ttScore converts a root-relative score to the node-relative form stored in the transposition
// table: mate scores are shifted by ply so that the same position reached at a different depth
// from the root still reads back a correct distance-to-mate.
func ttScore(s eval.Score, ply int) eval.Score {
	switch {
	case s > eval.MateThreshold:
		return s + eval.Score(ply)
	case s < -eval.MateThreshold:
		return s - eval.Score(ply)
	default:
		return s
	}
}

// fromTTScore is ttScore's inverse, applied on read.
func fromTTScore(s eval.Score, ply int) eval.Score {
	switch {
	case s > eval.MateThreshold:
		return s - eval.Score(ply)
	case s < -eval.MateThreshold:
		return s + eval.Score(ply)
	default:
		return s
	}
}

// negamax implements fail-soft principal variation search:
//
//	function pvs(node, depth, alpha, beta) is
//	    if depth = 0 or node is terminal then return quiescence(node, alpha, beta)
//	    best := -inf
//	    for each child of node do
//	        if child is first child then
//	            score := -pvs(child, depth-1, -beta, -alpha)
//	        else
//	            score := -pvs(child, depth-1, -alpha-1, -alpha)   // null window
//	            if alpha < score < beta then
//	                score := -pvs(child, depth-1, -beta, -score)  // re-search
//	        best := max(best, score)
//	        alpha := max(alpha, score)
//	        if alpha >= beta then break                            // cutoff
//	    return best                                                // fail-soft
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
func (r *run) negamax(ctx context.Context, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if isClosed(r.quit) {
		return eval.Draw, nil
	}
	if r.b.IsDraw() {
		return eval.Draw, nil
	}
	if depth <= 0 {
		r.nodes++
		return r.quiescence(ctx, ply, alpha, beta), nil
	}

	origAlpha := alpha
	var ttMove board.Move
	if e, ok := r.tt.Read(r.b.Hash()); ok {
		ttMove = e.Move
		if e.Depth >= depth {
			score := fromTTScore(e.Score, ply)
			switch e.Bound {
			case ExactBound:
				return score, []board.Move{e.Move}
			case LowerBound:
				alpha = eval.Max(alpha, score)
			case UpperBound:
				beta = eval.Min(beta, score)
			}
			if alpha >= beta {
				return score, []board.Move{e.Move}
			}
		}
	}

	r.nodes++

	moves := board.NewMoveQueue(r.b.PseudoLegalMoves(), board.PreferFirst(ttMove, r.order.Priority))

	hasLegalMove := false
	best := eval.NegInf
	var bestMove board.Move
	var pv []board.Move

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.MakeMove(m) {
			continue
		}

		var score eval.Score
		var rem []board.Move
		if !hasLegalMove {
			score, rem = r.negamax(ctx, depth-1, ply+1, -beta, -alpha)
			score = -score
		} else {
			score, rem = r.negamax(ctx, depth-1, ply+1, -alpha-1, -alpha)
			score = -score
			if alpha < score && score < beta {
				score, rem = r.negamax(ctx, depth-1, ply+1, -beta, -score)
				score = -score
			}
		}
		r.b.UnmakeMove()
		hasLegalMove = true

		if score > best {
			best = score
			bestMove = m
			pv = append([]board.Move{m}, rem...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break // beta cutoff
		}
	}

	if !hasLegalMove {
		if r.b.InCheck() {
			return -eval.Checkmate + eval.Score(ply), nil
		}
		return eval.Draw, nil
	}

	bound := ExactBound
	switch {
	case best <= origAlpha:
		bound = UpperBound
	case best >= beta:
		bound = LowerBound
	}
	r.tt.Write(r.b.Hash(), Entry{Bound: bound, Depth: depth, Score: ttScore(best, ply), Move: bestMove})

	return best, pv
}
