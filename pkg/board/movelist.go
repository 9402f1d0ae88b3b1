package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// MoveRank is the relative move-ordering score PVS and quiescence sort candidate moves by: higher
// ranked moves are tried first, so that alpha-beta cutoffs trigger as early as possible.
type MoveRank int16

// RankFn assigns a rank to a move, given the position it would be played in.
type RankFn func(move Move) MoveRank

// preferredRank is high enough to outrank any ordinary MVV/LVA or promotion score, so the move it
// is assigned to is always dequeued first.
const preferredRank MoveRank = math.MaxInt16

// PreferFirst wraps fn so that preferred, if present among the ranked moves, always ranks above
// everything else -- used to try the transposition table's remembered best move before anything
// else at a node.
func PreferFirst(preferred Move, fn RankFn) RankFn {
	return func(m Move) MoveRank {
		if preferred.Equals(m) {
			return preferredRank
		}
		return fn(m)
	}
}

// RankSort orders moves by fn, highest rank first, preserving relative order between equally
// ranked moves.
func RankSort(moves []Move, fn RankFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// MoveQueue dequeues pseudo-legal moves highest-rank-first. It is built once per search node from
// that node's full move list and drained by repeated calls to Next as the node explores children.
type MoveQueue struct {
	h rankHeap
}

// NewMoveQueue builds a queue over moves, each ranked by fn.
func NewMoveQueue(moves []Move, fn RankFn) *MoveQueue {
	h := make(rankHeap, len(moves))
	for i, m := range moves {
		h[i] = ranked{move: m, rank: fn(m)}
	}
	heap.Init(&h)
	return &MoveQueue{h: h}
}

// Next pops and returns the remaining move with the highest rank.
func (q *MoveQueue) Next() (Move, bool) {
	if q.Len() == 0 {
		return Move{}, false
	}
	top := heap.Pop(&q.h).(ranked)
	return top.move, true
}

// Len reports how many moves remain in the queue.
func (q *MoveQueue) Len() int {
	return q.h.Len()
}

func (q *MoveQueue) String() string {
	if q.Len() == 0 {
		return "movequeue[empty]"
	}
	return fmt.Sprintf("movequeue[next=%v, remaining=%v]", q.h[0].move, q.Len())
}

// ranked pairs a move with the rank it was queued under.
type ranked struct {
	move Move
	rank MoveRank
}

// rankHeap is a max-heap of ranked moves, fixed in size: it is built once via heap.Init and only
// ever shrinks via Pop, so Push panics rather than silently growing it.
type rankHeap []ranked

func (h rankHeap) Len() int { return len(h) }

func (h rankHeap) Less(i, j int) bool { return h[i].rank > h[j].rank }

func (h rankHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x interface{}) {
	panic("rankHeap: fixed size, built once via NewMoveQueue")
}

func (h *rankHeap) Pop() interface{} {
	old := *h
	n := len(old)
	top := old[n-1]
	*h = old[:n-1]
	return top
}
