package repository

import (
	"context"
	"hash/fnv"
	"sync"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then player ID ASC (deterministic). In-order
// traversal of a board's treap therefore walks the hall of fame from best
// to worst. Priorities are hashed from the player ID so the tree stays
// balanced regardless of insertion order or score distribution.

// node is one treap entry within a board.
type node struct {
	id    string
	score float64
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aScore, aID) ranks earlier than (bScore, bID).
func less(aScore float64, aID string, bScore float64, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func priority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, score float64) *node {
	if n == nil {
		return &node{id: id, score: score, prio: priority(id), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score float64) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	case less(score, id, n.score, n.id):
		n.left = deleteNode(n.left, id, score)
	default:
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// rankOf returns the 1-based in-order position of (id, score).
func rankOf(n *node, id string, score float64) int {
	rank := 1
	for n != nil {
		if score == n.score && id == n.id {
			return rank + nsize(n.left)
		}
		if less(score, id, n.score, n.id) {
			n = n.left
		} else {
			rank += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, Entry{PlayerID: n.id, Score: n.score})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// board holds one mode's ranking state.
type board struct {
	root *node
	byID map[string]float64
}

// TreapStore implements Store with one treap per mode.
type TreapStore struct {
	mu     sync.RWMutex
	boards map[string]*board
}

// NewTreapStore constructs an empty hall-of-fame store.
func NewTreapStore() *TreapStore {
	return &TreapStore{boards: make(map[string]*board)}
}

func (s *TreapStore) boardFor(mode string) *board {
	b, ok := s.boards[mode]
	if !ok {
		b = &board{byID: make(map[string]float64)}
		s.boards[mode] = b
	}
	return b
}

// UpdateBest implements Store.UpdateBest in O(log n) expected time.
func (s *TreapStore) UpdateBest(ctx context.Context, mode, playerID string, score float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.boardFor(mode)
	if old, ok := b.byID[playerID]; ok {
		if score <= old {
			return false, nil
		}
		b.root = deleteNode(b.root, playerID, old)
	}
	b.byID[playerID] = score
	b.root = insert(b.root, playerID, score)
	return true, nil
}

// Rank implements Store.Rank in O(log n) expected time.
func (s *TreapStore) Rank(ctx context.Context, mode, playerID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[mode]
	if !ok {
		return Entry{}, ErrNotFound
	}
	score, ok := b.byID[playerID]
	if !ok {
		return Entry{}, ErrNotFound
	}

	return Entry{
		Rank:     rankOf(b.root, playerID, score),
		PlayerID: playerID,
		Score:    score,
	}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(ctx context.Context, mode string, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[mode]
	if !ok {
		return []Entry{}, nil
	}

	out := make([]Entry, 0, n)
	collectTopN(b.root, n, &out)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range s.boards {
		for id := range b.byID {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
