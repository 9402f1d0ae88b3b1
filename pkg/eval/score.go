// Package eval implements static position evaluation and move ordering.
package eval

import "github.com/kestrelchess/kestrel/pkg/board"

// Score is a centipawn evaluation, from the perspective it was computed for. Plain arithmetic
// negation (-s) flips perspective; mate distance bookkeeping (shorter mates scoring higher than
// longer ones) is the search package's responsibility, via an explicit ply counter, not encoded
// in the type itself.
type Score int32

const (
	// Checkmate is the score of being mated right now. A node that is N plies from the root and
	// discovers mate scores it as Checkmate-N (for the mated side, negative), so that a forced
	// mate closer to the root always outscores one further away.
	Checkmate Score = 1_000_000

	// MateThreshold is the boundary above (below, negated) which a score is considered to encode
	// a forced mate rather than a material/positional evaluation.
	MateThreshold Score = Checkmate - 1000

	// Inf and NegInf bound the search window beyond any reachable score, including mate scores.
	Inf    Score = Checkmate + 1
	NegInf Score = -Inf

	Draw Score = 0
)

// IsMate reports whether s encodes a forced mate, for or against the side it was computed for.
func (s Score) IsMate() bool {
	return s > MateThreshold || s < -MateThreshold
}

func Max(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// Crop clamps s to [lo, hi].
func (s Score) Crop(lo, hi Score) Score {
	return Max(lo, Min(hi, s))
}

// Unit returns +1 for White and -1 for Black, the sign convention negamax multiplies a
// White-relative score by to get the current side's perspective.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}
