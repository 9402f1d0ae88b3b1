// Package engine wires the board, search and opening book packages into a single
// stateful player: the thing a console or other protocol driver talks to.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/book"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are default runtime parameters, overridable per search.
type Options struct {
	Depth int  // default depth limit; 0 == no limit.
	Hash  uint // transposition table size in MB; 0 == disabled.
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB}", o.Depth, o.Hash)
}

// Engine owns the current position plus the search machinery that plays it.
type Engine struct {
	name, author string

	factory search.TranspositionTableFactory
	zt      *board.ZobristTable
	seed    int64
	opts    Options
	book    *book.Book

	b        *board.Board
	tt       search.TranspositionTable
	order    *eval.Ordering
	bookRand *rand.Rand
	active   search.Handle
	mu       sync.Mutex
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTable overrides the transposition table factory (for testing, typically).
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// WithOptions sets the default search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist seeds the Zobrist table and move-ordering jitter deterministically.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithBook configures an opening book consulted by Analyze before searching.
func WithBook(b *book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// New creates an engine in the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		factory: search.NewTranspositionTable,
		book:    book.Empty,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.order = eval.NewOrdering(e.seed)
	e.bookRand = rand.New(rand.NewSource(e.seed))

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

func (e *Engine) Name() string   { return fmt.Sprintf("%v %v", e.name, version) }
func (e *Engine) Author() string { return e.author }

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = sizeMB
}

// Board returns an independent copy of the current position, safe to make/unmake moves on
// without racing an active search.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b.Clone()
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.b)
}

// Reset replaces the current position, given a FEN string.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, hash=%vMB", position, e.opts.Depth, e.opts.Hash)

	e.haltSearchIfActive(ctx)

	b, err := fen.Decode(position, e.zt)
	if err != nil {
		return err
	}
	e.b = b

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}

	logw.Infof(ctx, "New board:\n%v", e.b)
	return nil
}

// Move applies a single move, given in coordinate notation (e2e4, e7e8q, ...), usually an
// opponent's. It returns an error, and leaves the position unchanged, if the move is not legal.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	m, ok := e.b.ResolveMove(candidate)
	if !ok {
		return fmt.Errorf("no such move: %v", move)
	}
	e.b.MakeMove(m)

	logw.Infof(ctx, "Move %v:\n%v", m, e.b)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if e.b.Ply() == 0 {
		return fmt.Errorf("no move to take back")
	}
	e.b.UnmakeMove()

	logw.Infof(ctx, "Takeback:\n%v", e.b)
	return nil
}

// Analyze launches a search of the current position, consulting the opening book first. opt
// overrides the engine's default depth when DepthLimit is set.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opt.DepthLimit == 0 {
		opt.DepthLimit = e.opts.Depth
	}

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	logw.Infof(ctx, "Analyze %v, opt=%+v", e.b, opt)

	if entries := e.book.Find(e.b.Hash()); len(entries) > 0 {
		if m, ok := book.Pick(entries, e.bookRand); ok {
			if resolved, ok := e.b.ResolveMove(m); ok {
				out := make(chan search.PV, 1)
				out <- search.PV{Moves: []board.Move{resolved}}
				close(out)
				return out, nil
			}
		}
	}

	launcher := search.Iterative{TT: e.tt, Order: e.order}
	handle, out := launcher.Launch(ctx, e.b.Clone(), opt)
	e.active = handle
	return out, nil
}

// Halt stops the active search, if any, and returns its last completed PV.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}
	pv := e.active.Halt()
	logw.Infof(ctx, "Search halted: %v", pv)
	e.active = nil
	return pv, true
}
