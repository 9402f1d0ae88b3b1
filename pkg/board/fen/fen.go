// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kestrelchess/kestrel/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN string into a board, using zt for the resulting hash.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string, zt *board.ZobristTable) (*board.Board, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	// (1) Piece placement, from rank 8 down to rank 1, each rank from file a to file h.

	var squares [board.NumSquares]board.Piece

	rank, file := 7, 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, fmt.Errorf("invalid rank length in FEN: %q", fen)
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		case unicode.IsLetter(r):
			pt, ok := board.ParsePieceType(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN: %q", r, fen)
			}
			if rank < 0 || file > 7 {
				return nil, fmt.Errorf("invalid placement in FEN: %q", fen)
			}
			color := board.Black
			if unicode.IsUpper(r) {
				color = board.White
			}
			squares[board.NewSquare(file, rank)] = board.Piece{Color: color, Type: pt}
			file++

		default:
			return nil, fmt.Errorf("invalid character in FEN: %q", fen)
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("invalid number of squares in FEN: %q", fen)
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: %q", fen)
	}

	// (4) En passant target square, or "-". Only honored if an enemy pawn actually stands beside
	// the square the just-pushed pawn landed on -- a target with no capturing pawn adjacent is
	// dropped rather than recorded, the same way make() only ever records a real one.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: %q", fen)
		}
		if enPassantCapturePossible(squares, turn, sq) {
			ep = sq
		}
	}

	// (5) Halfmove clock, since the last pawn advance or capture.

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}

	// (6) Fullmove number, starting at 1 and incremented after Black's move.

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", fen)
	}

	return board.NewBoard(squares, turn, castling, ep, halfmove, fullmove, zt), nil
}

// Encode renders b as a FEN string.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < 8; file++ {
			p := b.Square(board.NewSquare(file, rank))
			if p.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), b.Turn(), printCastling(b.Castling()), ep, b.HalfmoveClock(), b.FullMoves())
}

// enPassantCapturePossible reports whether turn has a pawn beside the square the pawn that just
// double-pushed to set target landed on -- the same adjacency check the original engine applies
// both on FEN load and after every move, before trusting an en passant target at all.
func enPassantCapturePossible(squares [board.NumSquares]board.Piece, turn board.Color, target board.Square) bool {
	landingRank := target.Rank() - 1
	if turn == board.Black {
		landingRank = target.Rank() + 1
	}
	if landingRank < 0 || landingRank > 7 {
		return false
	}

	file := target.File()
	for _, df := range [2]int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if p := squares[board.NewSquare(f, landingRank)]; p.Type == board.Pawn && p.Color == turn {
			return true
		}
	}
	return false
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printPiece(p board.Piece) rune {
	return []rune(p.String())[0]
}
