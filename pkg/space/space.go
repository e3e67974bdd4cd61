// Package space implements a discrete interval map: a mapping from every
// value of a discrete, totally ordered metric to an optional payload, stored
// as a canonical set of maximal, pairwise disjoint spans that never touch
// when their payloads are equal. The
// spans live in a red-black tree augmented with subtree hulls for pruned point
// lookup, and are threaded on an in-order doubly linked list.
//
// A Space is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// Space is a range based mapping of metric values to payloads. Payloads are
// presumed cheap to copy; payload equality decides when touching spans
// coalesce.
type Space[M interval.Metric[M], P comparable] struct {
	root  *node[M, P]
	head  *node[M, P]
	tail  *node[M, P]
	arena arena[M, P]
	count int
}

func New[M interval.Metric[M], P comparable]() *Space[M, P] {
	return &Space[M, P]{}
}

// Count returns the number of distinct spans.
func (s *Space[M, P]) Count() int { return s.count }

// Clear removes all spans and releases the node storage.
func (s *Space[M, P]) Clear() {
	s.root, s.head, s.tail = nil, nil, nil
	s.count = 0
	s.arena.reset()
}

// Find returns the span containing m, if any. The descent is pruned by the
// subtree hulls: it stops with a miss at the first node whose subtree hull
// does not contain m.
func (s *Space[M, P]) Find(m M) (interval.Range[M], P, bool) {
	n := s.root
	for n != nil {
		switch {
		case m.Compare(n.rng.From()) < 0:
			if !n.hull.Contains(m) {
				var zero P
				return interval.Empty[M](), zero, false
			}
			n = n.left
		case n.rng.To().Compare(m) < 0:
			if !n.hull.Contains(m) {
				var zero P
				return interval.Empty[M](), zero, false
			}
			n = n.right
		default:
			return n.rng, n.payload, true
		}
	}
	var zero P
	return interval.Empty[M](), zero, false
}

// lowerBound returns the rightmost span that starts at or before target, or
// nil if every span starts after target.
func (s *Space[M, P]) lowerBound(target M) *node[M, P] {
	n := s.root
	var best *node[M, P]
	for n != nil {
		if target.Compare(n.rng.From()) < 0 {
			n = n.left
		} else {
			best = n
			if n.rng.To().Compare(target) < 0 {
				n = n.right
			} else {
				break
			}
		}
	}
	return best
}

// remove unlinks the span and recycles its node.
func (s *Space[M, P]) remove(n *node[M, P]) {
	s.removeNode(n)
	s.arena.destroy(n)
}

// maxPlus1 returns the successor of r's upper bound, clamped at the metric
// maximum. The clamped value is only ever used in branches that have already
// proven a strictly larger stored value exists.
func maxPlus1[M interval.Metric[M]](r interval.Range[M]) M {
	m := r.To()
	if m.Compare(m.Max()) < 0 {
		m = m.Next()
	}
	return m
}

// minMinus1 returns the predecessor of r's lower bound, clamped at the metric
// minimum. The clamped value is only ever used in branches that have already
// proven a strictly smaller stored value exists.
func minMinus1[M interval.Metric[M]](r interval.Range[M]) M {
	m := r.From()
	if m.Compare(m.Min()) > 0 {
		m = m.Prev()
	}
	return m
}

// Mark sets the payload for every value in r, regardless of the current
// state, and restores canonical form. Existing nodes are reused whenever
// possible to minimize allocation.
func (s *Space[M, P]) Mark(r interval.Range[M], payload P) {
	if r.IsEmpty() {
		return
	}
	n := s.lowerBound(r.From())
	var x *node[M, P] // the node that ends up carrying the marked span

	toPlus1 := maxPlus1(r)

	if n != nil {
		fromMinus1 := minMinus1(r)
		if n.rng.From().Compare(r.From()) == 0 {
			if p := n.prev; p != nil && p.payload == payload && p.rng.To().Compare(fromMinus1) == 0 {
				// the predecessor is adjacent with the same payload, coalesce
				x = p
				n = x
				x.setTo(r.To())
			} else if n.rng.To().Compare(r.To()) <= 0 {
				// the existing span is subsumed by the request, reuse it
				x = n
				x.setTo(r.To())
				x.payload = payload
			} else if n.payload == payload {
				// covered by an existing span with the same payload
				return
			} else {
				// the existing span covers the request with a different
				// payload, clip it and put the request in front
				x = s.arena.make(r, payload)
				n.setFrom(toPlus1) // n extends past r so no saturation
				s.insertBefore(n, x)
				return
			}
		} else if n.payload == payload && n.rng.To().Compare(fromMinus1) >= 0 {
			// left adjacent or overlapping with the same payload
			x = n
			if x.rng.To().Compare(r.To()) >= 0 {
				return
			}
			x.setTo(r.To())
		} else if n.rng.To().Compare(r.To()) <= 0 {
			// left skew overlap with a different payload, or a gap
			if n.rng.To().Compare(r.From()) >= 0 {
				n.setTo(fromMinus1)
			} else if y := n.next; y != nil && y.rng.To().Compare(r.To()) <= 0 {
				// the request covers the successor, reuse it
				x = y
				x.setRange(r)
				x.payload = payload
				n = x // advanced again below
			}
		} else {
			// the existing span strictly covers the request with a different
			// payload, split it around the request
			x = s.arena.make(r, payload)
			rest := s.arena.make(interval.New(toPlus1, n.rng.To()), n.payload)
			n.setTo(fromMinus1)
			s.insertAfter(n, x)
			s.insertAfter(x, rest)
			return
		}
		n = n.next
		if x == nil {
			x = s.arena.make(r, payload)
			if n != nil {
				s.insertBefore(n, x)
			} else {
				s.append(x)
			}
		}
	} else {
		n = s.head
		if n != nil && n.payload == payload &&
			(r.HasIntersection(n.rng) || r.IsLeftAdjacentTo(n.rng)) {
			// the first span continues the request with the same payload
			x = n
			n = n.next
			x.setFrom(r.From())
			if x.rng.To().Compare(r.To()) < 0 {
				x.setTo(r.To())
			}
		} else {
			x = s.arena.make(r, payload)
			s.prepend(x)
			// n still points at the old head for the sweep below
		}
	}

	// x carries the marked span; every remaining span of interest starts at
	// or past it.
	for n != nil {
		if n.rng.To().Compare(r.To()) <= 0 {
			// fully covered by the new span
			y := n
			n = n.next
			s.remove(y)
		} else if toPlus1.Compare(n.rng.From()) < 0 {
			// a gap past the marked span
			break
		} else if n.payload == payload {
			// skew overlap or adjacency with the same payload, absorb
			x.setTo(n.rng.To())
			y := n
			n = n.next
			s.remove(y)
		} else if n.rng.From().Compare(r.To()) <= 0 {
			// skew overlap with a different payload, clip
			n.setFrom(toPlus1)
			break
		} else {
			break
		}
	}
}
