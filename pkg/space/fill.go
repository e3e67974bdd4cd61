package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// Fill sets the payload for every value in r that has no payload yet. Values
// already mapped keep their payload. Canonical form is restored.
func (s *Space[M, P]) Fill(r interval.Range[M], payload P) {
	if r.IsEmpty() {
		return
	}
	n := s.lowerBound(r.From())
	var x *node[M, P] // carry: the span being extended over the unmapped prefix
	min := r.From()
	max := r.To()

	// Handle a span starting left of the range.
	if n != nil {
		if n.rng.From().Compare(min) < 0 {
			min1 := min.Prev() // a span starts before min, so min is not minimal
			if n.rng.To().Compare(min1) < 0 {
				// no overlap and not adjacent
				n = n.next
			} else if n.rng.To().Compare(max) >= 0 {
				// the range is already covered
				return
			} else if n.payload != payload {
				// different payload, clip the range on the left
				min = n.rng.To().Next() // n.to < max so no saturation
				n = n.next
			} else {
				// skew overlap or adjacent with the same payload, carry it
				x = n
				n = n.next
			}
		}
	} else {
		n = s.head
	}

	// Invariant below: n starts at or past min. max never changes, and the
	// clamped successor is only consulted when a strictly larger stored value
	// exists.
	toPlus1 := maxPlus1(r)

	for n != nil {
		if n.payload == payload {
			if x != nil {
				if n.rng.To().Compare(max) <= 0 {
					// the next span is covered, absorb it later
					s.remove(n)
					n = x.next
				} else if n.rng.From().Compare(toPlus1) <= 0 {
					// overlap or adjacency with a larger upper bound
					x.setTo(n.rng.To())
					s.remove(n)
					return
				} else {
					// room to finish off the range
					x.setTo(max)
					return
				}
			} else {
				if n.rng.To().Compare(max) <= 0 {
					// the next span is covered, carry it
					x = n
					x.setFrom(min)
					n = n.next
				} else if n.rng.From().Compare(toPlus1) <= 0 {
					n.setFrom(min)
					return
				} else {
					// no overlap, room to complete the range
					s.insertBefore(n, s.arena.make(interval.New(min, max), payload))
					return
				}
			}
		} else {
			if x != nil {
				if max.Compare(n.rng.From()) < 0 {
					// the range ends before n starts
					x.setTo(max)
					return
				} else if max.Compare(n.rng.To()) <= 0 {
					// the range ends inside n
					x.setTo(n.rng.From().Prev())
					return
				} else {
					// n is contained in the range, skip over it
					x.setTo(n.rng.From().Prev())
					x = nil
					min = n.rng.To().Next() // max lies past n so no saturation
					n = n.next
				}
			} else {
				if max.Compare(n.rng.From()) < 0 {
					// entirely before the next span
					s.insertBefore(n, s.arena.make(interval.New(min, max), payload))
					return
				}
				if min.Compare(n.rng.From()) < 0 {
					// leading unmapped section
					s.insertBefore(n, s.arena.make(interval.New(min, n.rng.From().Prev()), payload))
				}
				if max.Compare(n.rng.To()) <= 0 {
					return
				}
				min = n.rng.To().Next()
				n = n.next
			}
		}
	}
	// min lies past every stored span.
	if x != nil {
		x.setTo(max)
	} else {
		s.append(s.arena.make(interval.New(min, max), payload))
	}
}
