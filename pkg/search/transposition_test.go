package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableReadWriteRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)

	zt := board.NewZobristTable(1)
	b := board.NewStartingBoard(zt)

	e := search.Entry{Bound: search.ExactBound, Depth: 4, Score: 37, Move: board.Move{From: board.E2, To: board.E4}}
	tt.Write(b.Hash(), e)

	got, ok := tt.Read(b.Hash())
	require.True(t, ok)
	assert.Equal(t, e, got)
}

func TestTranspositionTableMiss(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	_, ok := tt.Read(board.ZobristHash(12345))
	assert.False(t, ok)
}

func TestTranspositionTableDoesNotOverwriteWithShallowerEntry(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	hash := board.ZobristHash(7)

	deep := search.Entry{Bound: search.ExactBound, Depth: 10, Score: 5}
	tt.Write(hash, deep)

	shallow := search.Entry{Bound: search.ExactBound, Depth: 2, Score: -5}
	tt.Write(hash, shallow)

	got, ok := tt.Read(hash)
	require.True(t, ok)
	assert.Equal(t, deep, got)
}

func TestTranspositionTableOverwritesWithDeeperEntry(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	hash := board.ZobristHash(9)

	shallow := search.Entry{Bound: search.ExactBound, Depth: 2, Score: -5}
	tt.Write(hash, shallow)

	deep := search.Entry{Bound: search.ExactBound, Depth: 10, Score: 5}
	tt.Write(hash, deep)

	got, ok := tt.Read(hash)
	require.True(t, ok)
	assert.Equal(t, deep, got)
}

func TestNoTranspositionTableAlwaysMisses(t *testing.T) {
	var tt search.NoTranspositionTable
	tt.Write(board.ZobristHash(1), search.Entry{})

	_, ok := tt.Read(board.ZobristHash(1))
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tt.Size())
}

func TestSearchFindsMateInOne(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", zt)
	require.NoError(t, err)

	e := &search.Engine{TT: search.NoTranspositionTable{}, Order: eval.NewOrdering(1)}
	_, score, pv := e.Search(context.Background(), b, 3, nil)

	require.NotEmpty(t, pv)
	assert.True(t, score.IsMate())
	assert.Greater(t, score, eval.Score(0))
}
