package board_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeCheckmate(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", zt)
	require.NoError(t, err)

	m, ok := b.ResolveMove(board.Move{From: board.A1, To: board.A8})
	require.True(t, ok)
	require.True(t, b.MakeMove(m))

	result := b.Outcome()
	assert.Equal(t, board.WhiteWins, result.Outcome)
	assert.Equal(t, board.Checkmate, result.Reason)
}

func TestOutcomeStalemate(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("k7/8/1Q6/8/8/8/8/7K b - - 0 1", zt)
	require.NoError(t, err)

	result := b.Outcome()
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.Stalemate, result.Reason)
}

func TestOutcomeInsufficientMaterialBareKings(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("8/8/4k3/8/8/3K4/8/8 w - - 0 1", zt)
	require.NoError(t, err)

	result := b.Outcome()
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.InsufficientMaterial, result.Reason)
}

func TestOutcomeUndecidedWithSufficientMaterial(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartingBoard(zt)

	result := b.Outcome()
	assert.Equal(t, board.Undecided, result.Outcome)
}

func TestOutcomeFiftyMoveRule(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("k6r/8/8/8/8/8/8/K6R w - - 99 60", zt)
	require.NoError(t, err)

	m, ok := b.ResolveMove(board.Move{From: board.H1, To: board.H2})
	require.True(t, ok)
	require.True(t, b.MakeMove(m))

	result := b.Outcome()
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.FiftyMoveRule, result.Reason)
}
