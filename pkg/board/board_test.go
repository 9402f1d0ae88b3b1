package board_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.PseudoLegalMoves() {
		if !b.MakeMove(m) {
			continue
		}
		nodes += perft(b, depth-1)
		b.UnmakeMove()
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartingBoard(zt)

	tests := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(b, tt.depth), "depth %d", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", zt)
	require.NoError(t, err)

	tests := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(b, tt.depth), "depth %d", tt.depth)
	}
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	zt := board.NewZobristTable(42)
	b := board.NewStartingBoard(zt)

	before := b.Hash()
	for _, m := range b.LegalMoves() {
		require.True(t, b.MakeMove(m))
		assert.Equal(t, zt.FullHash(b), b.Hash(), "hash out of sync after %v", m)
		b.UnmakeMove()
		assert.Equal(t, before, b.Hash(), "hash not restored after unmaking %v", m)
	}
}

func TestMakeUnmakeRestoresBoardString(t *testing.T) {
	zt := board.NewZobristTable(3)
	b, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", zt)
	require.NoError(t, err)

	before := fen.Encode(b)
	for _, m := range b.LegalMoves() {
		require.True(t, b.MakeMove(m))
		b.UnmakeMove()
		assert.Equal(t, before, fen.Encode(b), "position not restored after unmaking %v", m)
	}
}

func TestEnPassantCapture(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("8/8/8/3pP3/8/8/8/4K2k w - d6 0 1", zt)
	require.NoError(t, err)

	m, ok := b.ResolveMove(board.Move{From: board.E5, To: board.D6})
	require.True(t, ok)
	assert.True(t, m.EnPassant)
	assert.True(t, m.IsCapture)
	assert.Equal(t, board.Pawn, m.CapturedType)

	require.True(t, b.MakeMove(m))
	assert.True(t, b.Square(board.D5).IsEmpty(), "captured pawn must be removed")
	assert.Equal(t, board.Pawn, b.Square(board.D6).Type)
	b.UnmakeMove()
	assert.Equal(t, board.Pawn, b.Square(board.D5).Type)
}

func TestCastlingRightsRevokedByRookCapture(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K1NR w KQkq - 0 1", zt)
	require.NoError(t, err)

	capture, ok := b.ResolveMove(board.Move{From: board.A1, To: board.A8})
	require.True(t, ok)

	require.True(t, b.MakeMove(capture))
	assert.False(t, b.Castling().IsAllowed(board.BlackQueenSideCastle))
	b.UnmakeMove()
	assert.True(t, b.Castling().IsAllowed(board.BlackQueenSideCastle))
}

func TestThreefoldRepetitionDraw(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartingBoard(zt)

	shuttle := []board.Move{
		{PieceType: board.Knight, From: board.G1, To: board.F3},
		{PieceType: board.Knight, From: board.G8, To: board.F6},
		{PieceType: board.Knight, From: board.F3, To: board.G1},
		{PieceType: board.Knight, From: board.F6, To: board.G8},
	}
	for i := 0; i < 2; i++ {
		for _, m := range shuttle {
			resolved, ok := b.ResolveMove(m)
			require.True(t, ok)
			require.True(t, b.MakeMove(resolved))
		}
	}
	assert.True(t, b.IsDraw())
}
