// Package repository holds the opportunity board that ranks scored events.
package repository

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: ROI DESC, then event id ASC (deterministic). "less" means ranks
// earlier, so in-order traversal yields the board from best to worst.

// roiScale controls fixed-point scaling from float64; ROIs carry two decimals.
const roiScale = 1_000_000

type roiFP int64

func toFixedPoint(x float64) roiFP {
	switch {
	case math.IsNaN(x):
		return 0
	case x*roiScale >= math.MaxInt64:
		return roiFP(math.MaxInt64)
	case x*roiScale <= math.MinInt64:
		return roiFP(math.MinInt64)
	}
	return roiFP(math.Round(x * roiScale))
}

type node struct {
	id    int
	roi   roiFP
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

// less returns true if (aROI, aID) should appear before (bROI, bID).
func less(aROI roiFP, aID int, bROI roiFP, bID int) bool {
	if aROI != bROI {
		return aROI > bROI
	}
	return aID < bID
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

func insert(n *node, id int, roi roiFP, prio uint64) *node {
	if n == nil {
		return &node{id: id, roi: roi, prio: prio, size: 1}
	}
	if less(roi, id, n.roi, n.id) {
		n.left = insert(n.left, id, roi, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, roi, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id int, roi roiFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case roi == n.roi && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, roi)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, roi)
		}
	case less(roi, id, n.roi, n.id):
		n.left = deleteNode(n.left, id, roi)
	default:
		n.right = deleteNode(n.right, id, roi)
	}
	fix(n)
	return n
}

// position returns the 1-based position of (roi, id), which must be present.
func position(n *node, id int, roi roiFP) int {
	pos := 0
	for n != nil {
		switch {
		case roi == n.roi && id == n.id:
			return pos + nsize(n.left) + 1
		case less(roi, id, n.roi, n.id):
			n = n.left
		default:
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return pos
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, byID map[int]model.Recommendation, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, byID, out)
	if len(*out) < limit {
		if rec, ok := byID[n.id]; ok {
			*out = append(*out, Entry{Rank: len(*out) + 1, Recommendation: rec})
		}
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, byID, out)
	}
}

// TreapStore keeps the board as a treap with random priorities and subtree
// sizes, giving O(log n) expected upsert and rank.
type TreapStore struct {
	mu        sync.RWMutex
	root      *node
	byID      map[int]model.Recommendation
	keys      map[int]roiFP
	rng       *rand.Rand
	seed      uint64
	component string
}

// NewTreapStore constructs an empty board.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID:      make(map[int]model.Recommendation),
		keys:      make(map[int]roiFP),
		seed:      uint64(time.Now().UnixNano()),
		component: "board",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed>>1|1))
	return s
}

// Upsert implements Store.Upsert with O(log n) expected time.
func (s *TreapStore) Upsert(ctx context.Context, rec model.Recommendation) (bool, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecordErrorByComponent(s.component, "context_cancelled")
		return false, err
	}
	key := toFixedPoint(rec.ExpectedROI)

	s.mu.Lock()
	defer s.mu.Unlock()

	old, existed := s.keys[rec.EventID]
	if existed {
		s.root = deleteNode(s.root, rec.EventID, old)
	}
	s.byID[rec.EventID] = rec
	s.keys[rec.EventID] = key
	s.root = insert(s.root, rec.EventID, key, s.rng.Uint64())
	return !existed, nil
}

// Rank returns the current position of an event in O(log n).
func (s *TreapStore) Rank(_ context.Context, eventID int) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[eventID]
	if !ok {
		metrics.RecordErrorByComponent(s.component, "not_found")
		return Entry{}, ErrNotFound
	}
	return Entry{Rank: position(s.root, eventID, key), Recommendation: s.byID[eventID]}, nil
}

// TopN returns the top n entries.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent(s.component, "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, s.byID, &out)
	return out, nil
}

// Count returns the number of events on the board.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
