package board

// Outcome is the final state of a game, from no one's particular perspective.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Reason records why an Outcome was reached.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return ""
	}
}

// Result is the adjudicated outcome of a position, with Undecided/NoReason meaning the game is
// still in progress.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// Loss returns the outcome of the side to move losing, used when adjudicating checkmate.
func Loss(c Color) Outcome {
	if c == White {
		return BlackWins
	}
	return WhiteWins
}

// Outcome adjudicates the position: checkmate/stalemate (which requires generating legal moves,
// the caller's one unavoidable cost), the 50-move rule, 3-fold repetition, and insufficient
// material. Undecided means play continues.
func (b *Board) Outcome() Result {
	if len(b.LegalMoves()) == 0 {
		if b.InCheck() {
			return Result{Outcome: Loss(b.turn), Reason: Checkmate}
		}
		return Result{Outcome: Draw, Reason: Stalemate}
	}
	if b.halfmove >= 100 {
		return Result{Outcome: Draw, Reason: FiftyMoveRule}
	}
	if b.repetitions[b.hash] >= 3 {
		return Result{Outcome: Draw, Reason: ThreefoldRepetition}
	}
	if b.HasInsufficientMaterial() {
		return Result{Outcome: Draw, Reason: InsufficientMaterial}
	}
	return Result{Outcome: Undecided}
}

// HasInsufficientMaterial reports whether neither side has enough material to force checkmate:
// king vs king, king+minor vs king, or king+bishop vs king+bishop with same-colored bishops.
func (b *Board) HasInsufficientMaterial() bool {
	var minors [NumColors]int
	var bishopSquare [NumColors]Square
	bishopSquare[White], bishopSquare[Black] = NoSquare, NoSquare

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() || p.Type == King {
			continue
		}
		switch p.Type {
		case Knight, Bishop:
			minors[p.Color]++
			if p.Type == Bishop {
				bishopSquare[p.Color] = sq
			}
		default:
			return false // a pawn, rook or queen can always, in principle, force mate.
		}
	}

	if minors[White] == 0 && minors[Black] == 0 {
		return true // bare kings.
	}
	if minors[White]+minors[Black] == 1 {
		return true // king+minor vs king.
	}
	if minors[White] == 1 && minors[Black] == 1 && bishopSquare[White] != NoSquare && bishopSquare[Black] != NoSquare {
		return squareColor(bishopSquare[White]) == squareColor(bishopSquare[Black])
	}
	return false
}

func squareColor(sq Square) int {
	return (sq.File() + sq.Rank()) % 2
}
