package board

// This file implements the 10x12 mailbox auxiliary board used for geometry: detecting whether a
// step off a square lands on another real square or off the edge of the board, in O(1), without
// per-axis bounds checks. The interior 8x8 region holds the real squares; a two-row border above
// and below, and a one-column border on each side (which, since rows wrap into each other, acts
// as two columns between adjacent rows), absorb any offset a piece can make, so an out-of-bounds
// step is simply a lookup that returns "off board" instead of a valid square.

const (
	mailboxWidth  = 10
	mailboxHeight = 12
	mailboxSize   = mailboxWidth * mailboxHeight

	// offBoard is the mailbox120 sentinel for a cell outside the playable 8x8 region.
	offBoard = -1
)

// toMailbox120 and toSquare64 are inverse lookup tables between the 0..63 Square numbering and
// the 0..119 mailbox index. Built once at init from the mapping index120 = (rank+2)*10 + (file+1),
// which places the real board in rows 2..9, columns 1..8 of the 10-wide extended board.
var (
	toMailbox120 [NumSquares]int
	toSquare64   [mailboxSize]int8 // holds Square(0..63), or offBoard if the cell isn't a real square.
)

func init() {
	for i := range toSquare64 {
		toSquare64[i] = offBoard
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		idx := (sq.Rank()+2)*mailboxWidth + (sq.File() + 1)
		toMailbox120[sq] = idx
		toSquare64[idx] = int8(sq)
	}
}

// step applies a mailbox-120 offset to a square, returning the landing square and whether it
// stayed on the board.
func step(sq Square, offset int) (Square, bool) {
	idx := toMailbox120[sq] + offset
	if idx < 0 || idx >= mailboxSize {
		return NoSquare, false
	}
	if s := toSquare64[idx]; s != offBoard {
		return Square(s), true
	}
	return NoSquare, false
}

// Mailbox-120 geometric offsets, by piece type. Knights and kings step once per offset; bishops,
// rooks and queens slide repeatedly along an offset until blocked or off board.
var (
	knightOffsets = []int{-21, -19, -12, -8, 8, 12, 19, 21}
	bishopOffsets = []int{-11, -9, 9, 11}
	rookOffsets   = []int{-10, -1, 1, 10}
	queenOffsets  = []int{-11, -10, -9, -1, 1, 9, 10, 11} // also King's (single-step) offsets
)
