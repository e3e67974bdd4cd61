package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// BlendFunc merges color into an existing payload in place. It returns true
// when the blended payload is valid and should remain in the space, false
// when the blended subrange is transparent and must be erased.
type BlendFunc[P, U any] func(payload *P, color U) bool

// Blend merges color into every value of r with the method's payload type as
// the color type. See the package level Blend for a free color type.
func (s *Space[M, P]) Blend(r interval.Range[M], color P, blender BlendFunc[P, P]) {
	Blend(s, r, color, blender)
}

// Blend merges color into every value of r. Values without a payload are
// treated as carrying the zero payload: if blending color into a zero payload
// yields a valid payload, unmapped subranges of r acquire that "plain" color,
// otherwise they stay unmapped. Mapped subranges have their payload blended
// in place; a false result from the blender erases that subrange. The blended
// payload is always the one stored, so the blender need not be idempotent.
func Blend[M interval.Metric[M], P comparable, U any](s *Space[M, P], r interval.Range[M], color U, blender BlendFunc[P, U]) {
	if r.IsEmpty() {
		return
	}
	var plain P
	plainKeep := blender(&plain, color)

	n := s.lowerBound(r.From())
	if n == nil {
		n = s.head
	}

	rToPlus1 := maxPlus1(r) // only consulted when a span extends past r

	// remaining tracks what is still to blend.
	remaining := r

	for n != nil {
		// no overlap at all with this span, look further right
		if n.rng.To().Compare(remaining.From()) < 0 {
			n = n.next
			continue
		}
		pred := n.prev

		// Left extension: clip the span to end just before the blend region
		// and continue with a stub carrying the overlap.
		if n.rng.From().Compare(remaining.From()) < 0 {
			stub := s.arena.make(interval.New(remaining.From(), n.rng.To()), n.payload)
			n.setTo(remaining.From().Prev())
			s.insertAfter(n, stub)
			pred = n
			n = stub
		}

		predEdge := interval.EdgeNone
		if pred != nil {
			predEdge = pred.rng.LeftEdgeRelationship(remaining)
		}

		// the span extends past the blend region
		rightExt := n.rng.To().Compare(remaining.To()) > 0
		// the span starts inside the blend region
		rightOverlap := remaining.Contains(n.rng.From())
		// the span starts just past the blend region
		rightAdj := remaining.IsLeftAdjacentTo(n.rng)
		// the span already carries the color used for unmapped values
		nPlain := plainKeep && n.payload == plain
		// the predecessor touches the blend region and carries that color
		predPlain := plainKeep && predEdge == interval.EdgeAdj && pred.payload == plain

		// The span is past the blend region: whatever is left can be finished
		// by stretching a neighbor or inserting one span.
		if !rightOverlap {
			if rightAdj && nPlain {
				n.setFrom(remaining.From())
				if predPlain {
					pm := pred.rng.From()
					s.remove(pred)
					n.setFrom(pm)
				}
			} else if predPlain {
				pred.setTo(remaining.To())
			} else if plainKeep && !remaining.IsEmpty() {
				s.insertBefore(n, s.arena.make(remaining, plain))
			}
			s.coalesceLeft(n)
			return
		}

		// Fill the gap, if any, between the blend region start and the span.
		// The gap is painted as its own plain span, never folded into n: n's
		// overlap still has the blender applied to it below, and the plain
		// color is the result of a single blend. Coalescence with the blended
		// span happens after the blend.
		if plainKeep && remaining.From().Compare(n.rng.From()) < 0 {
			predAdj := pred != nil && pred.rng.To().Next().Compare(remaining.From()) == 0
			nFromMinus1 := n.rng.From().Prev()
			if predAdj && pred.payload == plain {
				pred.setTo(nFromMinus1)
			} else {
				s.insertBefore(n, s.arena.make(interval.New(remaining.From(), nFromMinus1), plain))
			}
		}

		// Blend the overlap into a temporary span, then update or replace n.
		fillTo := remaining.To()
		if !rightExt {
			fillTo = n.rng.To()
		}
		fillRng := interval.New(n.rng.From(), fillTo)
		fillPayload := n.payload
		fillKeep := blender(&fillPayload, color)
		nextN := n.next

		if fillTo.Compare(fillTo.Max()) == 0 {
			remaining = interval.Empty[M]()
		} else {
			remaining = remaining.SetFrom(fillTo.Next())
		}

		if fillKeep {
			if rightExt {
				if n.payload == fillPayload {
					// blending left the payload unchanged, pull the span left
					n.setFrom(fillRng.From())
					s.coalesceLeft(n)
				} else {
					n.setFrom(rToPlus1) // n extends past r so no saturation
					f := s.arena.make(fillRng, fillPayload)
					s.insertBefore(n, f)
					s.coalesceLeft(f)
				}
				return
			}
			// Collapse into the previous span if adjacent with matching
			// payload, otherwise swap in the blended span.
			if pred = n.prev; pred != nil && pred.rng.IsLeftAdjacentTo(fillRng) && pred.payload == fillPayload {
				s.remove(n)
				pred.setTo(fillRng.To())
			} else {
				s.insertBefore(n, s.arena.make(fillRng, fillPayload))
				s.remove(n)
			}
		} else if rightExt {
			n.setFrom(rToPlus1)
			return
		} else {
			s.remove(n)
		}

		n = nextN
	}

	// No spans past the blend region; any remainder goes at the end.
	if plainKeep && !remaining.IsEmpty() {
		n = s.tail
		// Any stored span ends before the remainder, so its start is not
		// minimal and stepping down is safe.
		if n != nil && n.payload == plain && n.rng.To().Compare(remaining.From().Prev()) >= 0 {
			n.setTo(remaining.To())
		} else {
			s.append(s.arena.make(remaining, plain))
		}
	}
}

// coalesceLeft merges n with its predecessor when they touch and carry the
// same payload.
func (s *Space[M, P]) coalesceLeft(n *node[M, P]) {
	if p := n.prev; p != nil && p.rng.IsLeftAdjacentTo(n.rng) && p.payload == n.payload {
		pm := p.rng.From()
		s.remove(p)
		n.setFrom(pm)
	}
}
