// Package book implements a binary opening book keyed by position hash, in the same 16-byte
// record shape made popular by the Polyglot format: an 8-byte big-endian key, a 2-byte encoded
// move, and 6 trailing bytes of weight/learning data.
//
// Records are keyed with this engine's own Zobrist hash (board.ZobristTable), not the official
// Polyglot constant tables -- a book built by this engine's own self-play is the only source of
// entries, so there is no external .bin file to stay byte-compatible with. What is preserved is
// the record layout, the sorted-by-key binary search lookup, and the move bitfield encoding.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/kestrelchess/kestrel/pkg/board"
)

const recordSize = 16

// Entry is a single opening book move for a position, with its relative weight.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an immutable, sorted-by-key opening book loaded once at startup.
type Book struct {
	records []record
}

type record struct {
	key    board.ZobristHash
	move   board.Move
	weight uint16
}

// Empty is an opening book with no entries; every Find misses.
var Empty = &Book{}

// Load reads a book from path. A missing file is not an error: the engine runs with Empty.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty, nil
		}
		return nil, fmt.Errorf("open book: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader reads a book from r, a sequence of 16-byte records.
func LoadReader(r io.Reader) (*Book, error) {
	var records []record

	var buf [recordSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read book record: %w", err)
		}

		key := board.ZobristHash(binary.BigEndian.Uint64(buf[0:8]))
		encoded := binary.BigEndian.Uint16(buf[8:10])
		weight := binary.BigEndian.Uint16(buf[10:12])

		m, ok := decodeMove(encoded)
		if !ok {
			continue // a zero record (from-square == to-square) marks no move; skip it.
		}
		records = append(records, record{key: key, move: m, weight: weight})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].key < records[j].key })
	return &Book{records: records}, nil
}

// decodeMove unpacks the 16-bit move encoding: bits 0-2 to-file, 3-5 to-rank, 6-8 from-file, 9-11
// from-rank, 12-14 promotion (0=none, 1=N, 2=B, 3=R, 4=Q). Castling is encoded king-captures-rook
// (e1h1, e1a1, e8h8, e8a8), the Polyglot convention, and translated to this engine's king-moves-
// two-squares convention.
func decodeMove(data uint16) (board.Move, bool) {
	toFile := int(data & 0x7)
	toRank := int((data >> 3) & 0x7)
	fromFile := int((data >> 6) & 0x7)
	fromRank := int((data >> 9) & 0x7)
	promo := (data >> 12) & 0x7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)
	if from == to {
		return board.Move{}, false
	}

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	var promotion board.PieceType
	switch promo {
	case 1:
		promotion = board.Knight
	case 2:
		promotion = board.Bishop
	case 3:
		promotion = board.Rook
	case 4:
		promotion = board.Queen
	}

	return board.Move{From: from, To: to, Promotion: promotion}, true
}

// Find returns the book entries for hash, empty if the position is not in the book.
func (b *Book) Find(hash board.ZobristHash) []Entry {
	lo := sort.Search(len(b.records), func(i int) bool { return b.records[i].key >= hash })

	var out []Entry
	for i := lo; i < len(b.records) && b.records[i].key == hash; i++ {
		out = append(out, Entry{Move: b.records[i].move, Weight: b.records[i].weight})
	}
	return out
}

// Pick returns the move of a weighted-random entry from entries, favoring higher weights. The
// second return is false if entries is empty.
func Pick(entries []Entry, r *rand.Rand) (board.Move, bool) {
	if len(entries) == 0 {
		return board.Move{}, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true
	}

	pick := uint32(r.Int31n(int32(total)))
	var cum uint32
	for _, e := range entries {
		cum += uint32(e.Weight)
		if pick < cum {
			return e.Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}

func (b *Book) Size() int {
	return len(b.records)
}
