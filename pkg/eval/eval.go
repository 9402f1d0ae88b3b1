package eval

import "github.com/kestrelchess/kestrel/pkg/board"

// totalPhase is the sum of every piece type's PhaseWeight() over a full starting set of non-pawn,
// non-king pieces: 4 knights + 4 bishops + 4 rooks + 2 queens.
const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// Evaluate returns the static evaluation of b from White's perspective, in centipawns: positive
// favors White, negative favors Black. It combines material, piece-square bonuses, and a
// middlegame/endgame phase interpolation driven by remaining non-pawn material.
func Evaluate(b *board.Board) Score {
	var mg, eg, phase int

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		p := b.Square(sq)
		if p.IsEmpty() {
			continue
		}

		sign := 1
		if p.Color == board.Black {
			sign = -1
		}

		mg += sign * (p.Type.MiddlegameValue() + pstValue(p.Color, p.Type, sq, true))
		eg += sign * (p.Type.EndgameValue() + pstValue(p.Color, p.Type, sq, false))
		phase += p.Type.PhaseWeight()
	}

	mg += kingSafetyBonus(b, board.White) - kingSafetyBonus(b, board.Black)

	if phase > totalPhase {
		phase = totalPhase
	}
	mgWeight := phase
	egWeight := totalPhase - phase

	return Score((mg*mgWeight + eg*egWeight) / totalPhase)
}

// kingSafetyBonus adds a middlegame-only penalty for standing in check and a bonus for each
// retained castling right, mirroring the original engine's king-safety heuristic. It does not
// apply in the endgame weight, the same way the original gates it off once material is low.
func kingSafetyBonus(b *board.Board, c board.Color) int {
	v := 0
	if b.IsSquareAttackedBy(b.KingSquare(c), c.Opponent()) {
		v -= 50
	}
	if b.Castling().IsAllowed(kingSideRight(c)) {
		v += 50
	}
	if b.Castling().IsAllowed(queenSideRight(c)) {
		v += 50
	}
	return v
}

func kingSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteKingSideCastle
	}
	return board.BlackKingSideCastle
}

func queenSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteQueenSideCastle
	}
	return board.BlackQueenSideCastle
}
