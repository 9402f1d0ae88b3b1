// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move, at the deepest depth")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	zt := board.NewZobristTable(0)
	b, err := fen.Decode(*position, zt)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		c := search(b, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, c, duration.Microseconds())
	}
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
	return fmt.Sprintf("nodes=%d,captures=%d,ep=%d,castles=%d,promotions=%d,checks=%d",
		c.nodes, c.captures, c.enPassant, c.castles, c.promotions, c.checks)
}

func search(b *board.Board, depth int, d bool) counts {
	if depth == 0 {
		return counts{nodes: 1}
	}

	var total counts
	for _, m := range b.LegalMoves() {
		if !b.MakeMove(m) {
			continue
		}

		c := moveCounts(m, b.InCheck())
		c.add(search(b, depth-1, false))
		b.UnmakeMove()

		if d {
			fmt.Printf("%v: %v\n", m, c)
		}
		total.add(c)
	}
	return total
}

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
