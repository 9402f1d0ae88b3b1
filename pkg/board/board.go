package board

import "fmt"

// Board is a mailbox-indexed chess position together with enough history to make and unmake
// moves, detect repetition, and report whether a side is in check. It owns the authoritative
// Zobrist hash, updated incrementally on every Make so callers never need to recompute it.
type Board struct {
	zt *ZobristTable

	squares    [NumSquares]Piece
	turn       Color
	castling   Castling
	enPassant  Square // NoSquare if none is available.
	halfmove   int    // moves since the last capture or pawn push, for the 50-move rule.
	fullmove   int
	kingSquare [NumColors]Square

	hash        ZobristHash
	history     []undoRecord
	repetitions map[ZobristHash]int
}

// undoRecord captures everything Make mutates beyond the piece placement needed to fully
// reconstruct the move itself, so Unmake can restore the exact prior state.
type undoRecord struct {
	move           Move
	prevCastling   Castling
	prevEnPassant  Square
	prevHalfmove   int
	prevHash       ZobristHash
	prevKingSquare Square // mover's king square before the move.
}

// NewBoard builds a board from an explicit placement and game state. zt must not be nil.
func NewBoard(squares [NumSquares]Piece, turn Color, castling Castling, enPassant Square, halfmove, fullmove int, zt *ZobristTable) *Board {
	b := &Board{
		zt:          zt,
		squares:     squares,
		turn:        turn,
		castling:    castling,
		enPassant:   enPassant,
		halfmove:    halfmove,
		fullmove:    fullmove,
		repetitions: map[ZobristHash]int{},
	}
	b.kingSquare[White] = NoSquare
	b.kingSquare[Black] = NoSquare
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p := squares[sq]; p.Type == King {
			b.kingSquare[p.Color] = sq
		}
	}
	b.hash = zt.FullHash(b)
	b.repetitions[b.hash] = 1
	return b
}

// NewStartingBoard builds a board in the standard initial chess position.
func NewStartingBoard(zt *ZobristTable) *Board {
	var squares [NumSquares]Piece
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		squares[NewSquare(file, 0)] = Piece{Color: White, Type: back[file]}
		squares[NewSquare(file, 1)] = Piece{Color: White, Type: Pawn}
		squares[NewSquare(file, 6)] = Piece{Color: Black, Type: Pawn}
		squares[NewSquare(file, 7)] = Piece{Color: Black, Type: back[file]}
	}
	return NewBoard(squares, White, FullCastingRights, NoSquare, 0, 1, zt)
}

// Clone returns an independent copy of b: make/unmake on one does not affect the other. The
// Zobrist table is shared, since it is immutable once built.
func (b *Board) Clone() *Board {
	c := &Board{
		zt:         b.zt,
		squares:    b.squares,
		turn:       b.turn,
		castling:   b.castling,
		enPassant:  b.enPassant,
		halfmove:   b.halfmove,
		fullmove:   b.fullmove,
		kingSquare: b.kingSquare,
		hash:       b.hash,
	}
	c.history = append([]undoRecord(nil), b.history...)
	c.repetitions = make(map[ZobristHash]int, len(b.repetitions))
	for k, v := range b.repetitions {
		c.repetitions[k] = v
	}
	return c
}

func (b *Board) Square(sq Square) Piece         { return b.squares[sq] }
func (b *Board) Turn() Color                    { return b.turn }
func (b *Board) Castling() Castling             { return b.castling }
func (b *Board) HalfmoveClock() int             { return b.halfmove }
func (b *Board) FullMoves() int                 { return b.fullmove }
func (b *Board) KingSquare(c Color) Square      { return b.kingSquare[c] }
func (b *Board) Hash() ZobristHash              { return b.hash }
func (b *Board) Ply() int                       { return len(b.history) }

func (b *Board) EnPassant() (Square, bool) {
	return b.enPassant, b.enPassant != NoSquare
}

// InCheck reports whether the side to move is currently in check.
func (b *Board) InCheck() bool {
	return b.IsSquareAttackedBy(b.kingSquare[b.turn], b.turn.Opponent())
}

// IsDraw reports whether the position is a draw by the 50-move rule or 3-fold repetition. It does
// not detect insufficient material or stalemate -- those require a legal move count, which is the
// search and console layers' responsibility.
func (b *Board) IsDraw() bool {
	return b.halfmove >= 100 || b.repetitions[b.hash] >= 3
}

// rookCastleSquares returns the rook's origin and destination for a castle on the given rank.
func rookCastleSquares(c Color, kingSide bool, rank int) (from, to Square) {
	if kingSide {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// IsSquareAttackedBy reports whether any piece of attacker color attacks sq.
func (b *Board) IsSquareAttackedBy(sq Square, attacker Color) bool {
	for _, off := range rookOffsets {
		if b.slideAttacks(sq, off, attacker, Rook, Queen) {
			return true
		}
	}
	for _, off := range bishopOffsets {
		if b.slideAttacks(sq, off, attacker, Bishop, Queen) {
			return true
		}
	}
	for _, off := range knightOffsets {
		if t, ok := step(sq, off); ok {
			if p := b.squares[t]; p.Color == attacker && p.Type == Knight {
				return true
			}
		}
	}
	for _, off := range queenOffsets {
		if t, ok := step(sq, off); ok {
			if p := b.squares[t]; p.Color == attacker && p.Type == King {
				return true
			}
		}
	}
	return b.pawnAttacks(sq, attacker)
}

func (b *Board) slideAttacks(sq Square, off int, attacker Color, types ...PieceType) bool {
	cur := sq
	for {
		t, ok := step(cur, off)
		if !ok {
			return false
		}
		p := b.squares[t]
		if p.IsEmpty() {
			cur = t
			continue
		}
		if p.Color == attacker {
			for _, want := range types {
				if p.Type == want {
					return true
				}
			}
		}
		return false
	}
}

// pawnAttackDeltas are the mailbox offsets, from a target square, to the squares a pawn of
// attacker color would have to stand on to capture onto it.
func pawnAttackDeltas(attacker Color) [2]int {
	if attacker == White {
		return [2]int{-9, -11}
	}
	return [2]int{9, 11}
}

func (b *Board) pawnAttacks(sq Square, attacker Color) bool {
	for _, d := range pawnAttackDeltas(attacker) {
		if t, ok := step(sq, d); ok {
			if p := b.squares[t]; p.Color == attacker && p.Type == Pawn {
				return true
			}
		}
	}
	return false
}

// PseudoLegalMoves generates every move available to the side to move without checking whether it
// leaves that side's own king in check. Combine with MakeMove, which rejects the move if it does.
func (b *Board) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	us := b.turn
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() || p.Color != us {
			continue
		}
		switch p.Type {
		case Pawn:
			b.genPawnMoves(sq, us, &moves)
		case Knight, King:
			b.genStepMoves(sq, p.Type, us, &moves)
		default:
			b.genSlideMoves(sq, p.Type, us, &moves)
		}
	}
	b.genCastleMoves(us, &moves)
	return moves
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave the mover's own king in
// check, by making and immediately unmaking each candidate.
func (b *Board) LegalMoves() []Move {
	candidates := b.PseudoLegalMoves()
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if b.MakeMove(m) {
			legal = append(legal, m)
			b.UnmakeMove()
		}
	}
	return legal
}

func (b *Board) genStepMoves(from Square, pt PieceType, us Color, moves *[]Move) {
	for _, off := range pt.Offsets() {
		to, ok := step(from, off)
		if !ok {
			continue
		}
		target := b.squares[to]
		if target.IsEmpty() {
			*moves = append(*moves, Move{PieceType: pt, From: from, To: to})
		} else if target.Color != us {
			*moves = append(*moves, Move{PieceType: pt, From: from, To: to, IsCapture: true, CapturedType: target.Type})
		}
	}
}

func (b *Board) genSlideMoves(from Square, pt PieceType, us Color, moves *[]Move) {
	for _, off := range pt.Offsets() {
		cur := from
		for {
			to, ok := step(cur, off)
			if !ok {
				break
			}
			target := b.squares[to]
			if target.IsEmpty() {
				*moves = append(*moves, Move{PieceType: pt, From: from, To: to})
				cur = to
				continue
			}
			if target.Color != us {
				*moves = append(*moves, Move{PieceType: pt, From: from, To: to, IsCapture: true, CapturedType: target.Type})
			}
			break
		}
	}
}

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

func (b *Board) genPawnMoves(from Square, us Color, moves *[]Move) {
	forward := 8
	startRank := 1
	captureDeltas := [2]int{9, 11}
	if us == Black {
		forward, startRank = -8, 6
		captureDeltas = [2]int{-9, -11}
	}

	if to := from + Square(forward); to.IsValid() && b.squares[to].IsEmpty() {
		b.addPawnMove(from, to, false, NoPieceType, false, moves)

		if from.Rank() == startRank {
			if to2 := from + Square(2*forward); b.squares[to2].IsEmpty() {
				*moves = append(*moves, Move{PieceType: Pawn, From: from, To: to2})
			}
		}
	}

	for _, d := range captureDeltas {
		t, ok := step(from, d)
		if !ok {
			continue
		}
		if target := b.squares[t]; !target.IsEmpty() {
			if target.Color != us {
				b.addPawnMove(from, t, true, target.Type, false, moves)
			}
		} else if b.enPassant != NoSquare && t == b.enPassant {
			b.addPawnMove(from, t, true, Pawn, true, moves)
		}
	}
}

func (b *Board) addPawnMove(from, to Square, capture bool, captured PieceType, enPassant bool, moves *[]Move) {
	if to.Rank() == 0 || to.Rank() == 7 {
		for _, promo := range promotionTypes {
			*moves = append(*moves, Move{
				PieceType: Pawn, From: from, To: to, Promotion: promo,
				IsCapture: capture, CapturedType: captured, EnPassant: enPassant,
			})
		}
		return
	}
	*moves = append(*moves, Move{
		PieceType: Pawn, From: from, To: to,
		IsCapture: capture, CapturedType: captured, EnPassant: enPassant,
	})
}

func (b *Board) genCastleMoves(us Color, moves *[]Move) {
	rank := 0
	kingSideRight, queenSideRight := WhiteKingSideCastle, WhiteQueenSideCastle
	if us == Black {
		rank = 7
		kingSideRight, queenSideRight = BlackKingSideCastle, BlackQueenSideCastle
	}
	if b.castling&(kingSideRight|queenSideRight) == 0 {
		return
	}

	kingSq := NewSquare(4, rank)
	if b.kingSquare[us] != kingSq {
		return
	}
	opp := us.Opponent()
	if b.IsSquareAttackedBy(kingSq, opp) {
		return
	}

	if b.castling.IsAllowed(kingSideRight) {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if b.squares[f].IsEmpty() && b.squares[g].IsEmpty() &&
			!b.IsSquareAttackedBy(f, opp) && !b.IsSquareAttackedBy(g, opp) {
			*moves = append(*moves, Move{PieceType: King, From: kingSq, To: g, CastleKing: true})
		}
	}
	if b.castling.IsAllowed(queenSideRight) {
		d, c, rookFile := NewSquare(3, rank), NewSquare(2, rank), NewSquare(1, rank)
		if b.squares[d].IsEmpty() && b.squares[c].IsEmpty() && b.squares[rookFile].IsEmpty() &&
			!b.IsSquareAttackedBy(d, opp) && !b.IsSquareAttackedBy(c, opp) {
			*moves = append(*moves, Move{PieceType: King, From: kingSq, To: c, CastleQueen: true})
		}
	}
}

// revokedCastlingRights returns the rights m strips away: moving a king strips both of the
// mover's rights; moving from or to a rook's home square strips that single right.
func revokedCastlingRights(b *Board, m Move) Castling {
	var revoked Castling
	if m.PieceType == King {
		if b.turn == White {
			revoked |= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			revoked |= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	revoked |= rookHomeRight(m.From)
	revoked |= rookHomeRight(m.To)
	return revoked & b.castling
}

func rookHomeRight(sq Square) Castling {
	switch sq {
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}

// enPassantTargetAfter returns the square a later en passant capture of m would target, but only
// when an enemy pawn actually stands beside m.To to perform that capture -- the target is not
// recorded on every double push, only ones a capture could follow.
func (b *Board) enPassantTargetAfter(m Move) (Square, bool) {
	target, ok := m.EnPassantTarget()
	if !ok {
		return NoSquare, false
	}

	attacker := b.turn.Opponent()
	rank, file := m.To.Rank(), m.To.File()
	for _, df := range [2]int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if p := b.squares[NewSquare(f, rank)]; p.Type == Pawn && p.Color == attacker {
			return target, true
		}
	}
	return NoSquare, false
}

// MakeMove applies m, which must be pseudo-legal, and reports whether it was legal -- i.e. it did
// not leave the mover's own king in check. On a false return the board is already unchanged; the
// caller must still call UnmakeMove after a true return, once it is done with the resulting
// position, the same as after any other move.
func (b *Board) MakeMove(m Move) bool {
	mover := b.turn
	b.make(m)
	if b.IsSquareAttackedBy(b.kingSquare[mover], mover.Opponent()) {
		b.UnmakeMove()
		return false
	}
	return true
}

func (b *Board) make(m Move) {
	newEP, _ := b.enPassantTargetAfter(m)
	revoked := revokedCastlingRights(b, m)
	newHash := b.zt.Update(b.hash, b, m, newEP, revoked)

	rec := undoRecord{
		move:           m,
		prevCastling:   b.castling,
		prevEnPassant:  b.enPassant,
		prevHalfmove:   b.halfmove,
		prevHash:       b.hash,
		prevKingSquare: b.kingSquare[b.turn],
	}

	mover := b.turn
	moving := b.squares[m.From]
	b.squares[m.From] = NoPiece

	if m.IsCapture {
		capSq := m.To
		if m.EnPassant {
			capSq = NewSquare(m.To.File(), m.From.Rank())
			b.squares[capSq] = NoPiece
		}
	}

	if m.IsPromotion() {
		moving.Type = m.Promotion
	}
	b.squares[m.To] = moving

	if m.PieceType == King {
		b.kingSquare[mover] = m.To
	}
	if m.CastleKing || m.CastleQueen {
		rookFrom, rookTo := rookCastleSquares(mover, m.CastleKing, m.From.Rank())
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = NoPiece
	}

	if m.PieceType == Pawn || m.IsCapture {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if mover == Black {
		b.fullmove++
	}

	b.castling = b.castling.Revoke(revoked)
	b.enPassant = newEP
	b.turn = mover.Opponent()
	b.hash = newHash

	b.history = append(b.history, rec)
	b.repetitions[b.hash]++
}

// UnmakeMove reverts the most recent make/MakeMove call. It panics if no move is outstanding,
// signalling a caller bug rather than masking it.
func (b *Board) UnmakeMove() {
	n := len(b.history)
	if n == 0 {
		panic("board: UnmakeMove with empty history")
	}
	rec := b.history[n-1]
	b.history = b.history[:n-1]

	b.repetitions[b.hash]--
	if b.repetitions[b.hash] == 0 {
		delete(b.repetitions, b.hash)
	}

	m := rec.move
	mover := b.turn.Opponent()

	moving := b.squares[m.To]
	if m.IsPromotion() {
		moving.Type = Pawn
	}
	b.squares[m.From] = moving
	b.squares[m.To] = NoPiece

	if m.IsCapture {
		capSq := m.To
		if m.EnPassant {
			capSq = NewSquare(m.To.File(), m.From.Rank())
		}
		b.squares[capSq] = Piece{Color: mover.Opponent(), Type: m.CapturedType}
	}

	if m.CastleKing || m.CastleQueen {
		rookFrom, rookTo := rookCastleSquares(mover, m.CastleKing, m.From.Rank())
		b.squares[rookFrom] = b.squares[rookTo]
		b.squares[rookTo] = NoPiece
	}

	if m.PieceType == King {
		b.kingSquare[mover] = rec.prevKingSquare
	}

	b.castling = rec.prevCastling
	b.enPassant = rec.prevEnPassant
	b.halfmove = rec.prevHalfmove
	b.hash = rec.prevHash
	if mover == Black {
		b.fullmove--
	}
	b.turn = mover
}

// ResolveMove resolves a from/to/promotion-only candidate (as parsed by ParseMove) against the
// position's legal moves, filling in capture/castle/en-passant metadata. It reports false if no
// legal move matches.
func (b *Board) ResolveMove(candidate Move) (Move, bool) {
	for _, m := range b.LegalMoves() {
		if m.Equals(candidate) {
			return m, true
		}
	}
	return Move{}, false
}

// String renders the board as an 8x8 grid, rank 8 first, with the side to move and castling
// rights on the last line.
func (b *Board) String() string {
	var sb []byte
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb = append(sb, b.squares[NewSquare(file, rank)].String()...)
			sb = append(sb, ' ')
		}
		sb = append(sb, '\n')
	}
	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}
	sb = append(sb, fmt.Sprintf("turn=%v castling=%v ep=%v halfmove=%d fullmove=%d", b.turn, b.castling, ep, b.halfmove, b.fullmove)...)
	return string(sb)
}
