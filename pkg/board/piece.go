package board

// PieceType represents a chess piece type without color: Pawn, Knight, Bishop, Rook, Queen or
// King. It carries the geometric and material data move generation and evaluation need: a list
// of mailbox-offset steps, whether it slides along those steps, and its middlegame/endgame
// material values. 3 bits.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	ZeroPieceType PieceType = Pawn
	NumPieceTypes PieceType = King + 1 // includes NoPieceType at index 0
)

// MiddlegameValue is the material value of the piece type in centipawns, middlegame phase.
func (p PieceType) MiddlegameValue() int {
	switch p {
	case Pawn:
		return 82
	case Knight:
		return 337
	case Bishop:
		return 365
	case Rook:
		return 477
	case Queen:
		return 1025
	default: // King, NoPieceType
		return 0
	}
}

// EndgameValue is the material value of the piece type in centipawns, endgame phase.
func (p PieceType) EndgameValue() int {
	switch p {
	case Pawn:
		return 94
	case Knight:
		return 281
	case Bishop:
		return 297
	case Rook:
		return 512
	case Queen:
		return 936
	default: // King, NoPieceType
		return 0
	}
}

// PhaseWeight is this piece type's contribution to the middlegame/endgame interpolation phase.
func (p PieceType) PhaseWeight() int {
	switch p {
	case Knight, Bishop:
		return 1
	case Rook:
		return 2
	case Queen:
		return 4
	default: // Pawn, King, NoPieceType
		return 0
	}
}

// IsSliding reports whether the piece type's offsets repeat until blocked (bishop, rook, queen).
func (p PieceType) IsSliding() bool {
	return p == Bishop || p == Rook || p == Queen
}

// Offsets returns the piece type's geometric steps, expressed as mailbox-120 deltas. Pawns are
// excluded -- their moves are direction-dependent and hand-coded in the move generator.
func (p PieceType) Offsets() []int {
	switch p {
	case Knight:
		return knightOffsets
	case Bishop:
		return bishopOffsets
	case Rook:
		return rookOffsets
	case Queen, King:
		return queenOffsets
	default:
		return nil
	}
}

func (p PieceType) IsValid() bool {
	return Pawn <= p && p <= King
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "-"
	}
}

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

// Piece is a (color, type) pair occupying a square.
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece is the zero-value empty-square sentinel.
var NoPiece = Piece{Type: NoPieceType}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	if p.Color == White {
		switch p.Type {
		case Pawn:
			return "P"
		case Knight:
			return "N"
		case Bishop:
			return "B"
		case Rook:
			return "R"
		case Queen:
			return "Q"
		case King:
			return "K"
		}
	}
	return p.Type.String()
}
