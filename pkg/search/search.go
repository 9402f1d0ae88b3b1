// Package search implements principal variation search over a board.Board, driven iteratively
// and memoized with a transposition table.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
)

// PV is the result of a (possibly partial) search to a given depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table occupancy, [0;1].
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%d%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}

// Options are per-search parameters. A zero value means "no limit" for both.
type Options struct {
	DepthLimit int           // maximum depth to search to; 0 == no limit.
	TimeLimit  time.Duration // wall-clock deadline for the whole iterative deepening run; 0 == no limit.
}

// Engine runs principal variation search to a fixed depth from the current position of b.
type Engine struct {
	TT      TranspositionTable
	Order   *eval.Ordering
	Explore int // not read by Search: quiescence search has no ply limit beyond the nominal depth.
}

// Search runs PVS to the given depth and returns the node count, the root score (from the side
// to move's perspective negated back to White's), and the principal variation. quit is polled
// between moves and search returns early, with a zero-value result, if it is already closed.
func (e *Engine) Search(ctx context.Context, b *board.Board, depth int, quit <-chan struct{}) (uint64, eval.Score, []board.Move) {
	r := &run{tt: e.TT, order: e.Order, b: b, quit: quit}
	score, pv := r.negamax(ctx, depth, 0, eval.NegInf, eval.Inf)
	return r.nodes, eval.Unit(b.Turn()) * score, pv
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
