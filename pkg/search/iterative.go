package search

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Launcher starts iteratively deepening searches.
type Launcher interface {
	// Launch begins searching b, which the launcher owns until the returned handle is halted. It
	// streams a PV per completed depth on the returned channel, closing it once the depth or
	// time limit is reached or the search is halted.
	Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop an in-flight search.
type Handle interface {
	// Halt stops the search, if still running, and returns the last completed PV. Idempotent.
	Halt() PV
}

// Iterative runs PVS at increasing depths -- 1, 2, 3, ... -- reporting a PV after each completed
// depth, until DepthLimit or TimeLimit is reached or the caller halts it. Re-using the
// transposition table between depths is what makes the deeper passes fast: the shallower pass
// has already filled it with a good move ordering.
type Iterative struct {
	TT    TranspositionTable
	Order *eval.Ordering
}

func (it Iterative) Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{quit: iox.NewAsyncCloser()}

	if opt.TimeLimit > 0 {
		timer := time.AfterFunc(opt.TimeLimit, func() { h.quit.Close() })
		go func() { <-h.quit.Closed(); timer.Stop() }()
	}

	go h.process(ctx, it.TT, it.Order, b, opt, out)
	return h, out
}

type handle struct {
	quit iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, tt TranspositionTable, order *eval.Ordering, b *board.Board, opt Options, out chan PV) {
	defer close(out)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	engine := &Engine{TT: tt, Order: order}

	for depth := 1; ; depth++ {
		if h.quit.IsClosed() {
			return
		}

		start := time.Now()
		nodes, score, moves := engine.Search(wctx, b, depth, h.quit.Closed())
		if h.quit.IsClosed() {
			return
		}

		pv := PV{Depth: depth, Nodes: nodes, Score: score, Moves: moves, Time: time.Since(start), Hash: tt.Used()}

		logw.Debugf(ctx, "Searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		if opt.DepthLimit > 0 && depth >= opt.DepthLimit {
			return // halt: reached max depth.
		}
		if score.IsMate() {
			return // halt: forced mate found within full-width search.
		}
	}
}

func (h *handle) Halt() PV {
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
