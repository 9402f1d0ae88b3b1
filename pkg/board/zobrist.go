package board

import "math/rand"

// ZobristHash is a position hash used for transposition table indexing and 3-fold repetition
// detection. Two positions that are identical under FIDE repetition rules hash identically.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable holds the pseudo-random keys a position hash is built from: one per
// (color, piece type, square), one per castling right, one per en-passant file, and one for the
// side to move. Castling and en-passant contributions are stored as independent keys -- not one
// key per combination -- so that the incremental update in Update can XOR out exactly the rights
// or file that changed, without recomputing the whole hash.
type ZobristTable struct {
	pieces   [NumColors][NumPieceTypes][NumSquares]ZobristHash
	castling [4]ZobristHash // indexed by bit position of WhiteKingSideCastle, WhiteQueenSideCastle, ...
	epFile   [8]ZobristHash
	turn     ZobristHash
}

// NewZobristTable builds a table from the given seed. Two tables built from the same seed are
// identical; use a fixed seed for reproducible hashes across runs.
func NewZobristTable(seed int64) *ZobristTable {
	r := rand.New(rand.NewSource(seed))
	zt := &ZobristTable{}

	for c := ZeroColor; c < NumColors; c++ {
		for p := Pawn; p <= King; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				zt.pieces[c][p][sq] = ZobristHash(r.Uint64())
			}
		}
	}
	for i := range zt.castling {
		zt.castling[i] = ZobristHash(r.Uint64())
	}
	for i := range zt.epFile {
		zt.epFile[i] = ZobristHash(r.Uint64())
	}
	zt.turn = ZobristHash(r.Uint64())
	return zt
}

func (zt *ZobristTable) pieceKey(c Color, p PieceType, sq Square) ZobristHash {
	return zt.pieces[c][p][sq]
}

var castlingBits = [4]Castling{WhiteKingSideCastle, WhiteQueenSideCastle, BlackKingSideCastle, BlackQueenSideCastle}

// castlingKey returns the XOR of the keys for every right present in rights.
func (zt *ZobristTable) castlingKey(rights Castling) ZobristHash {
	var h ZobristHash
	for i, bit := range castlingBits {
		if rights.IsAllowed(bit) {
			h ^= zt.castling[i]
		}
	}
	return h
}

func (zt *ZobristTable) enPassantKey(ep Square) ZobristHash {
	if ep == NoSquare {
		return 0
	}
	return zt.epFile[ep.File()]
}

// FullHash computes the hash of b from scratch: the XOR of every occupied square's piece key,
// the active castling rights, the en-passant file (if any), and the side-to-move key.
func (zt *ZobristTable) FullHash(b *Board) ZobristHash {
	var h ZobristHash
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p := b.squares[sq]; !p.IsEmpty() {
			h ^= zt.pieceKey(p.Color, p.Type, sq)
		}
	}
	h ^= zt.castlingKey(b.castling)
	h ^= zt.enPassantKey(b.enPassant)
	if b.turn == Black {
		h ^= zt.turn
	}
	return h
}

// Update computes the hash after making m on b, where b reflects the position BEFORE m is
// applied. It must agree exactly with FullHash(b-after-m); Board.make relies on that invariant
// to maintain the hash incrementally instead of recomputing it on every move.
func (zt *ZobristTable) Update(old ZobristHash, b *Board, m Move, newEnPassant Square, revoked Castling) ZobristHash {
	h := old
	mover := b.turn

	// (1) toggle side to move.
	h ^= zt.turn

	// (2) moving piece leaves its origin square.
	h ^= zt.pieceKey(mover, m.PieceType, m.From)

	// (3) captured piece (if any) leaves the board. En passant captures a pawn not on m.To.
	if m.IsCapture {
		capSq := m.To
		if m.EnPassant {
			capSq = NewSquare(m.To.File(), m.From.Rank())
		}
		h ^= zt.pieceKey(mover.Opponent(), m.CapturedType, capSq)
	}

	// (4) moving (or promoted) piece arrives at its destination.
	arriving := m.PieceType
	if m.IsPromotion() {
		arriving = m.Promotion
	}
	h ^= zt.pieceKey(mover, arriving, m.To)

	// (5) castling also relocates the rook.
	if m.CastleKing || m.CastleQueen {
		rank := m.From.Rank()
		rookFrom, rookTo := rookCastleSquares(mover, m.CastleKing, rank)
		h ^= zt.pieceKey(mover, Rook, rookFrom)
		h ^= zt.pieceKey(mover, Rook, rookTo)
	}

	// (6) castling rights and en-passant file, old out / new in.
	h ^= zt.castlingKey(revoked)
	h ^= zt.enPassantKey(b.enPassant)
	h ^= zt.enPassantKey(newEnPassant)

	return h
}
