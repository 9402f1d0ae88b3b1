// Package console implements a line-oriented debugging protocol for the engine: plain text
// commands in, plain text results out, one line at a time.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements the console protocol described in the command table: position/d/m/perft/eval/
// go/gotime.
type Driver struct {
	iox.AsyncCloser

	e   *engine.Engine
	out chan<- string

	active atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")
	d.out <- fmt.Sprintf("# %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			d.dispatch(ctx, line)

		case <-d.Closed():
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) dispatch(ctx context.Context, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "position":
		d.ensureInactive(ctx)
		d.cmdPosition(ctx, args)

	case "d":
		d.printBoard()

	case "m":
		d.cmdMove(ctx, args)

	case "perft":
		d.cmdPerft(args)

	case "eval":
		d.cmdEval(ctx, args)

	case "go":
		d.cmdGo(ctx, args, search.Options{})

	case "gotime":
		d.cmdGo(ctx, nil, search.Options{TimeLimit: parseSeconds(args)})

	case "hash":
		if len(args) > 0 {
			mb, _ := strconv.Atoi(args[0])
			d.e.SetHash(uint(mb))
		}

	case "stop", "halt":
		pv, err := d.e.Halt(ctx)
		if err == nil {
			d.reportSearchDone(pv)
		}

	case "quit", "exit", "q":
		d.ensureInactive(ctx)
		d.Close()

	default:
		d.out <- fmt.Sprintf("unknown command: %v", cmd)
	}
}

func (d *Driver) cmdPosition(ctx context.Context, args []string) {
	if len(args) == 0 {
		d.out <- "usage: position startpos | position fen <6 fields>"
		return
	}

	pos := fen.Initial
	rest := args[1:]
	if args[0] == "fen" {
		if len(rest) < 6 {
			d.out <- "invalid fen: expected 6 fields"
			return
		}
		pos = strings.Join(rest[:6], " ")
		rest = rest[6:]
	} else if args[0] != "startpos" {
		d.out <- fmt.Sprintf("unknown position kind: %v", args[0])
		return
	}

	if err := d.e.Reset(ctx, pos); err != nil {
		d.out <- fmt.Sprintf("invalid position: %v", err)
		return
	}

	move := false
	for _, arg := range rest {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			d.out <- fmt.Sprintf("invalid move %q: %v", arg, err)
			return
		}
	}
	d.printBoard()
}

func (d *Driver) cmdMove(ctx context.Context, args []string) {
	if len(args) == 0 {
		for _, m := range d.e.Board().LegalMoves() {
			d.out <- m.String()
		}
		return
	}
	if err := d.e.Move(ctx, args[0]); err != nil {
		d.out <- fmt.Sprintf("no such move: %v", args[0])
		return
	}
	d.printBoard()
}

func (d *Driver) cmdPerft(args []string) {
	if len(args) == 0 {
		d.out <- "usage: perft <depth>"
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		d.out <- fmt.Sprintf("invalid depth: %v", args[0])
		return
	}
	if depth == 0 {
		d.out <- "total: " + (counts{nodes: 1}).String()
		return
	}

	b := d.e.Board()
	var total counts
	for _, m := range b.LegalMoves() {
		if !b.MakeMove(m) {
			continue
		}
		c := moveCounts(m, b.InCheck())
		c.add(perft(b, depth-1))
		b.UnmakeMove()

		d.out <- fmt.Sprintf("%v: %v", m, c)
		total.add(c)
	}
	d.out <- fmt.Sprintf("total: %v", total)
}

type counts struct {
	nodes, captures, enPassant, castles, promotions, checks uint64
}

func (c *counts) add(o counts) {
	c.nodes += o.nodes
	c.captures += o.captures
	c.enPassant += o.enPassant
	c.castles += o.castles
	c.promotions += o.promotions
	c.checks += o.checks
}

func (c counts) String() string {
	return fmt.Sprintf("nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d",
		c.nodes, c.captures, c.enPassant, c.castles, c.promotions, c.checks)
}

// moveCounts tallies the single-move contribution to the six-tuple: gives is whether the move
// left the opponent in check.
func moveCounts(m board.Move, gives bool) counts {
	var c counts
	if m.IsCapture {
		c.captures++
	}
	if m.EnPassant {
		c.enPassant++
	}
	if m.CastleKing || m.CastleQueen {
		c.castles++
	}
	if m.IsPromotion() {
		c.promotions++
	}
	if gives {
		c.checks++
	}
	return c
}

// perft walks every legal move to the given depth, tallying the six-tuple over every move played
// at every ply (not just the leaves) -- the standard definition used by engine perft suites.
func perft(b *board.Board, depth int) counts {
	if depth == 0 {
		return counts{nodes: 1}
	}

	var c counts
	for _, m := range b.LegalMoves() {
		if !b.MakeMove(m) {
			continue
		}
		mc := moveCounts(m, b.InCheck())
		mc.add(perft(b, depth-1))
		c.add(mc)
		b.UnmakeMove()
	}
	return c
}

func (d *Driver) cmdEval(ctx context.Context, args []string) {
	depth := 1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			depth = v
		}
	}

	out, err := d.e.Analyze(ctx, search.Options{DepthLimit: depth})
	if err != nil {
		d.out <- fmt.Sprintf("eval failed: %v", err)
		return
	}
	var last search.PV
	for pv := range out {
		last = pv
	}
	d.out <- last.String()
}

func (d *Driver) cmdGo(ctx context.Context, args []string, opt search.Options) {
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			opt.DepthLimit = v
		}
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		d.out <- fmt.Sprintf("go failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.out <- pv.String()
		}
		d.reportSearchDone(last)
	}()
}

func (d *Driver) reportSearchDone(pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			d.out <- "bestmove (none)"
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) printBoard() {
	b := d.e.Board()
	result := b.Outcome()

	d.out <- ""
	d.out <- b.String()
	d.out <- fmt.Sprintf("fen: %v", d.e.Position())
	if result.Outcome != board.Undecided {
		d.out <- fmt.Sprintf("result: %v (%v)", result.Outcome, result.Reason)
	}
	d.out <- ""
}

func parseSeconds(args []string) time.Duration {
	if len(args) == 0 {
		return 0
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v <= 0 {
		return 0
	}
	return time.Duration(v) * time.Second
}
