package interval

import (
	"fmt"
)

// Range is a closed interval [from, to] over a discrete metric M. A range with
// from > to is empty and contains no values. The zero value of Range is the
// singleton of M's zero value; use Empty to construct the canonical empty
// range.
type Range[M Metric[M]] struct {
	from M
	to   M
}

// New returns the range [from, to].
func New[M Metric[M]](from, to M) Range[M] {
	return Range[M]{from: from, to: to}
}

// Of returns the singleton range containing only m.
func Of[M Metric[M]](m M) Range[M] {
	return Range[M]{from: m, to: m}
}

// Empty returns the canonical empty range [Max, Min].
func Empty[M Metric[M]]() Range[M] {
	var z M
	return Range[M]{from: z.Max(), to: z.Min()}
}

// Full returns the maximal range [Min, Max].
func Full[M Metric[M]]() Range[M] {
	var z M
	return Range[M]{from: z.Min(), to: z.Max()}
}

// From returns the lower bound of r.
func (r Range[M]) From() M { return r.from }

// To returns the upper bound of r.
func (r Range[M]) To() M { return r.to }

func (r Range[M]) SetFrom(m M) Range[M] {
	r.from = m
	return r
}

func (r Range[M]) SetTo(m M) Range[M] {
	r.to = m
	return r
}

// ClipMax shrinks the range by one value on the right. The caller must know
// the upper bound is not the metric minimum.
func (r Range[M]) ClipMax() Range[M] {
	r.to = r.to.Prev()
	return r
}

// Clip reduces the range to the values it shares with other, the operator
// form of Intersection.
func (r Range[M]) Clip(other Range[M]) Range[M] {
	return r.Intersection(other)
}

// Union extends the range to cover every value in other, the operator form of
// Hull.
func (r Range[M]) Union(other Range[M]) Range[M] {
	return r.Hull(other)
}

// Clear empties the range.
func (r Range[M]) Clear() Range[M] {
	return Empty[M]()
}

func (r Range[M]) String() string {
	return fmt.Sprintf("%v-%v", r.from, r.to)
}

func (r Range[M]) IsEmpty() bool {
	return r.from.Compare(r.to) > 0
}

func (r Range[M]) IsSingleton() bool {
	return r.from.Compare(r.to) == 0
}

func (r Range[M]) IsMaximal() bool {
	return r.from.Compare(r.from.Min()) == 0 && r.to.Compare(r.to.Max()) == 0
}

func (r Range[M]) Equal(other Range[M]) bool {
	return r.from.Compare(other.from) == 0 && r.to.Compare(other.to) == 0
}

func (r Range[M]) Contains(m M) bool {
	return r.from.Compare(m) <= 0 && m.Compare(r.to) <= 0
}

// HasIntersection reports whether the two ranges share at least one value.
func (r Range[M]) HasIntersection(other Range[M]) bool {
	return (other.from.Compare(r.from) <= 0 && r.from.Compare(other.to) <= 0) ||
		(r.from.Compare(other.from) <= 0 && other.from.Compare(r.to) <= 0)
}

// Intersection returns the range of values contained by both ranges, which is
// empty if the ranges are disjoint.
func (r Range[M]) Intersection(other Range[M]) Range[M] {
	out := r
	if r.from.Compare(other.from) < 0 {
		out.from = other.from
	}
	if other.to.Compare(r.to) < 0 {
		out.to = other.to
	}
	return out
}

// Hull returns the smallest range containing both ranges. An empty range acts
// as the identity.
func (r Range[M]) Hull(other Range[M]) Range[M] {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	out := r
	if other.from.Compare(r.from) < 0 {
		out.from = other.from
	}
	if r.to.Compare(other.to) < 0 {
		out.to = other.to
	}
	return out
}

// HasUnion reports whether the union of the two ranges is itself a range.
func (r Range[M]) HasUnion(other Range[M]) bool {
	return r.HasIntersection(other) || r.IsAdjacentTo(other)
}

// IsLeftAdjacentTo reports whether r ends exactly one value before other
// begins. Adjacency is probed by stepping a copy of the upper bound, never by
// arithmetic on the metric.
func (r Range[M]) IsLeftAdjacentTo(other Range[M]) bool {
	if r.to.Compare(other.from) < 0 {
		return r.to.Next().Compare(other.from) == 0
	}
	return false
}

// IsAdjacentTo reports whether the ranges are disjoint and touching.
func (r Range[M]) IsAdjacentTo(other Range[M]) bool {
	return r.IsLeftAdjacentTo(other) || other.IsLeftAdjacentTo(r)
}

func (r Range[M]) IsSupersetOf(other Range[M]) bool {
	return r.from.Compare(other.from) <= 0 && other.to.Compare(r.to) <= 0
}

func (r Range[M]) IsSubsetOf(other Range[M]) bool {
	return other.IsSupersetOf(r)
}

func (r Range[M]) IsStrictSupersetOf(other Range[M]) bool {
	return (r.from.Compare(other.from) < 0 && other.to.Compare(r.to) <= 0) ||
		(r.from.Compare(other.from) <= 0 && other.to.Compare(r.to) < 0)
}

func (r Range[M]) IsStrictSubsetOf(other Range[M]) bool {
	return other.IsStrictSupersetOf(r)
}

// Relationship classifies the relation of r to other.
func (r Range[M]) Relationship(other Range[M]) Relation {
	switch {
	case r.HasIntersection(other):
		switch {
		case r.Equal(other):
			return RelationEqual
		case r.IsSubsetOf(other):
			return RelationSubset
		case r.IsSupersetOf(other):
			return RelationSuperset
		default:
			return RelationOverlap
		}
	case r.IsAdjacentTo(other):
		return RelationAdjacent
	default:
		return RelationNone
	}
}

// LeftEdgeRelationship relates the right edge of r to the left edge of other.
//
//   - EdgeGap: other starts past r with values in between.
//   - EdgeAdj: other starts exactly one value past r.
//   - EdgeOvlp: other's left edge is inside r.
//   - EdgeNone: other's left edge is at or before r's left edge.
func (r Range[M]) LeftEdgeRelationship(other Range[M]) EdgeRelation {
	if r.to.Compare(other.from) < 0 {
		if r.to.Next().Compare(other.from) < 0 {
			return EdgeGap
		}
		return EdgeAdj
	}
	if r.from.Compare(other.from) >= 0 {
		return EdgeNone
	}
	return EdgeOvlp
}

// Less orders ranges by containment: r is less than other iff r is a strict
// subset of other. This is a partial order; use LexicographicLess for
// containers that need a total order.
func (r Range[M]) Less(other Range[M]) bool {
	return r.IsStrictSubsetOf(other)
}

// LexicographicLess is a strict weak ordering on (from, to), for use with
// sorted containers that cannot use the containment partial order.
func LexicographicLess[M Metric[M]](a, b Range[M]) bool {
	if cmp := a.from.Compare(b.from); cmp != 0 {
		return cmp < 0
	}
	return a.to.Compare(b.to) < 0
}
