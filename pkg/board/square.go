package board

import "fmt"

// Square represents a square on the board, ordered A1=0, B1=1 .. H8=63: square = rank*8 + file.
// Rank 0 is White's back rank. This is the standard mapping assumed by the mailbox offset
// geometry in mailbox.go. 6 bits.
//
//	A8 = 56, B8 = 57, C8 = 58, D8 = 59, E8 = 60, F8 = 61, G8 = 62, H8 = 63,
//	A7 = 48, B7 = 49, C7 = 50, D7 = 51, E7 = 52, F7 = 53, G7 = 54, H7 = 55,
//	A6 = 40, B6 = 41, C6 = 42, D6 = 43, E6 = 44, F6 = 45, G6 = 46, H6 = 47,
//	A5 = 32, B5 = 33, C5 = 34, D5 = 35, E5 = 36, F5 = 37, G5 = 38, H5 = 39,
//	A4 = 24, B4 = 25, C4 = 26, D4 = 27, E4 = 28, F4 = 29, G4 = 30, H4 = 31,
//	A3 = 16, B3 = 17, C3 = 18, D3 = 19, E3 = 20, F3 = 21, G3 = 22, H3 = 23,
//	A2 =  8, B2 =  9, C2 = 10, D2 = 11, E2 = 12, F2 = 13, G2 = 14, H2 = 15,
//	A1 =  0, B1 =  1, C1 =  2, D1 =  3, E1 =  4, F1 =  5, G1 =  6, H1 =  7
type Square int8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1

	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2

	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3

	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4

	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5

	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6

	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7

	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
	NoSquare   Square = -1
)

// NewSquare builds a Square from a zero-based file (0=a..7=h) and rank (0=rank1..7=rank8).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) IsValid() bool {
	return s >= ZeroSquare && s < NumSquares
}

// File returns the zero-based file, 0=a .. 7=h.
func (s Square) File() int {
	return int(s) & 7
}

// Rank returns the zero-based rank, 0=rank1 .. 7=rank8.
func (s Square) Rank() int {
	return int(s) >> 3
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", str)
	}

	file := runes[0]
	rank := runes[1]
	if file < 'a' || file > 'h' {
		return NoSquare, fmt.Errorf("invalid file in square: %q", str)
	}
	if rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid rank in square: %q", str)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '1'+rune(s.Rank()))
}
