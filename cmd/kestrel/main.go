// Command kestrel is a console-driven chess engine: mailbox move generation, principal variation
// search and an optional opening book, talking the line-oriented protocol in pkg/engine/console.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kestrelchess/kestrel/pkg/book"
	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/engine/console"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Int("depth", 6, "Default search depth limit (0 = no limit)")
	hash  = flag.Uint("hash", 32, "Transposition table size in MB (0 = disabled)")
	seed  = flag.Int64("seed", 0, "Zobrist table and move-ordering random seed")
	bookf = flag.String("book", "", "Path to an opening book file")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kestrel [options]

KESTREL is a console-driven chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash}),
		engine.WithZobrist(*seed),
	}
	if *bookf != "" {
		b, err := book.Load(*bookf)
		if err != nil {
			logw.Exitf(ctx, "Failed to load book %v: %v", *bookf, err)
		}
		opts = append(opts, engine.WithBook(b))
	}

	e := engine.New(ctx, "kestrel", "kestrelchess", opts...)

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
