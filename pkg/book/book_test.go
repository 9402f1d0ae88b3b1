package book_test

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeMove(from, to board.Square, promo uint16) uint16 {
	return uint16(to.File()) | uint16(to.Rank())<<3 | uint16(from.File())<<6 | uint16(from.Rank())<<9 | promo<<12
}

func writeRecord(buf *bytes.Buffer, key board.ZobristHash, move uint16, weight uint16) {
	var rec [16]byte
	binary.BigEndian.PutUint64(rec[0:8], uint64(key))
	binary.BigEndian.PutUint16(rec[8:10], move)
	binary.BigEndian.PutUint16(rec[10:12], weight)
	buf.Write(rec[:])
}

func TestLoadReaderFindsEntry(t *testing.T) {
	var buf bytes.Buffer
	writeRecord(&buf, 42, encodeMove(board.E2, board.E4, 0), 10)
	writeRecord(&buf, 42, encodeMove(board.D2, board.D4, 0), 5)
	writeRecord(&buf, 99, encodeMove(board.G1, board.F3, 0), 1)

	b, err := book.LoadReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Size())

	entries := b.Find(42)
	require.Len(t, entries, 2)

	var sawE4, sawD4 bool
	for _, e := range entries {
		if e.Move.From == board.E2 && e.Move.To == board.E4 {
			sawE4 = true
			assert.Equal(t, uint16(10), e.Weight)
		}
		if e.Move.From == board.D2 && e.Move.To == board.D4 {
			sawD4 = true
		}
	}
	assert.True(t, sawE4)
	assert.True(t, sawD4)
}

func TestFindMissReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeRecord(&buf, 1, encodeMove(board.E2, board.E4, 0), 1)

	b, err := book.LoadReader(&buf)
	require.NoError(t, err)

	assert.Empty(t, b.Find(2))
}

func TestDecodeTranslatesCastlingToKingTwoSquareMove(t *testing.T) {
	var buf bytes.Buffer
	writeRecord(&buf, 7, encodeMove(board.E1, board.H1, 0), 1)

	b, err := book.LoadReader(&buf)
	require.NoError(t, err)

	entries := b.Find(7)
	require.Len(t, entries, 1)
	assert.Equal(t, board.E1, entries[0].Move.From)
	assert.Equal(t, board.G1, entries[0].Move.To)
}

func TestDecodePromotion(t *testing.T) {
	var buf bytes.Buffer
	writeRecord(&buf, 3, encodeMove(board.E7, board.E8, 4), 1)

	b, err := book.LoadReader(&buf)
	require.NoError(t, err)

	entries := b.Find(3)
	require.Len(t, entries, 1)
	assert.Equal(t, board.Queen, entries[0].Move.Promotion)
}

func TestLoadMissingFileReturnsEmptyBook(t *testing.T) {
	b, err := book.Load("/nonexistent/path/to/book.bin")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Size())
}

func TestPickFavorsHigherWeight(t *testing.T) {
	entries := []book.Entry{
		{Move: board.Move{From: board.E2, To: board.E4}, Weight: 0},
		{Move: board.Move{From: board.D2, To: board.D4}, Weight: 1000},
	}

	r := rand.New(rand.NewSource(1))
	counts := map[board.Square]int{}
	for i := 0; i < 200; i++ {
		m, ok := book.Pick(entries, r)
		require.True(t, ok)
		counts[m.From]++
	}
	assert.Greater(t, counts[board.D2], counts[board.E2])
}

func TestPickEmptyMisses(t *testing.T) {
	_, ok := book.Pick(nil, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}
