package board

import "fmt"

// Move represents a (not necessarily legal) move, together with the metadata make/unmake needs
// to apply and revert it without re-deriving it from the position. Equals and the TT key only
// ever compare (From, To, Promotion) -- the minimum needed to identify a move in a given position;
// two Move values that differ only in CapturedType compare equal.
type Move struct {
	PieceType PieceType
	From, To  Square

	Promotion    PieceType // set iff this move promotes a pawn.
	CastleKing   bool
	CastleQueen  bool
	EnPassant    bool // true iff this is an en passant capture.
	CapturedType PieceType
	IsCapture    bool
}

func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// IsDoublePawnPush reports whether m moves a pawn two ranks from its origin, the only move that
// opens an en passant target square.
func (m Move) IsDoublePawnPush() bool {
	return m.PieceType == Pawn && (m.To-m.From == 16 || m.From-m.To == 16)
}

// EnPassantTarget returns the square a later en passant capture would target -- the square this
// pawn skipped over -- iff m is a double push.
func (m Move) EnPassantTarget() (Square, bool) {
	if !m.IsDoublePawnPush() {
		return NoSquare, false
	}
	if m.To > m.From {
		return m.From + 8, true
	}
	return m.From - 8, true
}

// Equals compares moves the way the transposition table and user-move resolution do: only by
// (from, to, promotion).
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "e2e4" or "e7e8q". The
// parsed move carries only from/to/promotion -- the caller is expected to resolve it against a
// position's legal moves to fill in the rest (see Board.ResolveMove).
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(string(runes[0:2]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	to, err := ParseSquare(string(runes[2:4]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		m.Promotion = promo
	}
	return m, nil
}

func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// PrintMoves formats a sequence of moves space-separated.
func PrintMoves(moves []Move) string {
	var sb []byte
	for i, m := range moves {
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, m.String()...)
	}
	return string(sb)
}
