package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

const slabSize = 64

// arena hands out nodes from slab allocations and recycles removed nodes
// through an intrusive free list. Slabs are never grown in place, so node
// addresses are stable for the life of the arena.
type arena[M interval.Metric[M], P comparable] struct {
	slab []node[M, P]
	used int
	free *node[M, P]
}

func (a *arena[M, P]) make(rng interval.Range[M], payload P) *node[M, P] {
	if n := a.free; n != nil {
		a.free = n.next
		*n = node[M, P]{rng: rng, hull: rng, payload: payload}
		return n
	}
	if a.used == len(a.slab) {
		a.slab = make([]node[M, P], slabSize)
		a.used = 0
	}
	n := &a.slab[a.used]
	a.used++
	n.rng = rng
	n.hull = rng
	n.payload = payload
	return n
}

// destroy releases the payload and returns the node to the free list.
func (a *arena[M, P]) destroy(n *node[M, P]) {
	var zero P
	*n = node[M, P]{payload: zero}
	n.next = a.free
	a.free = n
}

// reset drops all slabs and the free list.
func (a *arena[M, P]) reset() {
	a.slab = nil
	a.used = 0
	a.free = nil
}
