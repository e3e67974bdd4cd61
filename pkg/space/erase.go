package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// Erase removes every value in r from the space. Spans straddling a range
// edge are clipped; a span strictly covering r is split in two.
func (s *Space[M, P]) Erase(r interval.Range[M]) {
	if r.IsEmpty() {
		return
	}
	n := s.lowerBound(r.From())
	if n == nil {
		n = s.head
	}
	for n != nil {
		if n.rng.To().Compare(r.From()) < 0 {
			n = n.next
			continue
		}
		if r.To().Compare(n.rng.From()) < 0 {
			return
		}
		leftExt := n.rng.From().Compare(r.From()) < 0
		rightExt := n.rng.To().Compare(r.To()) > 0
		switch {
		case leftExt && rightExt:
			// the span strictly covers r, split it
			rest := s.arena.make(interval.New(r.To().Next(), n.rng.To()), n.payload)
			n.setTo(r.From().Prev())
			s.insertAfter(n, rest)
			return
		case leftExt:
			n.setTo(r.From().Prev())
			n = n.next
		case rightExt:
			n.setFrom(r.To().Next())
			return
		default:
			y := n
			n = n.next
			s.remove(y)
		}
	}
}
