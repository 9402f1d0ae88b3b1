package fen_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	zt := board.NewZobristTable(1)

	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3pP3/8/8/8/8 w - d6 0 1",
	}

	for _, tt := range tests {
		b, err := fen.Decode(tt, zt)
		require.NoError(t, err, tt)
		assert.Equal(t, tt, fen.Encode(b), tt)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	zt := board.NewZobristTable(1)

	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRX w KQkq - 0 1",
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt, zt)
		assert.Error(t, err, tt)
	}
}

func TestDecodeStartingPositionMatchesExplicitBoard(t *testing.T) {
	zt := board.NewZobristTable(7)

	fromFEN, err := fen.Decode(fen.Initial, zt)
	require.NoError(t, err)

	fromScratch := board.NewStartingBoard(zt)

	assert.Equal(t, fromScratch.Hash(), fromFEN.Hash())
}
