package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// Iterator walks the spans in metric order. It is invalidated by any mutation
// of the space.
type Iterator[M interval.Metric[M], P comparable] struct {
	s       *Space[M, P]
	cur     *node[M, P]
	started bool
}

func (s *Space[M, P]) Iterate() *Iterator[M, P] {
	return &Iterator[M, P]{s: s}
}

func (r *Iterator[M, P]) Next() bool {
	if !r.started {
		r.started = true
		r.cur = r.s.head
	} else if r.cur != nil {
		r.cur = r.cur.next
	}
	return r.cur != nil
}

func (r *Iterator[M, P]) Range() interval.Range[M] {
	return r.cur.rng
}

func (r *Iterator[M, P]) Payload() P {
	return r.cur.payload
}
