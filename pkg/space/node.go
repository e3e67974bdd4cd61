package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// node is a span in the tree: a range tagged with a payload. Nodes are linked
// both as a red-black tree ordered by range start and as an in-order doubly
// linked list, so predecessor and successor lookups during mutations are O(1).
type node[M interval.Metric[M], P comparable] struct {
	left, right, parent *node[M, P]
	red                 bool

	// in-order siblings; next doubles as the free list link
	prev, next *node[M, P]

	rng     interval.Range[M]
	hull    interval.Range[M] // hull of all ranges in the subtree rooted here
	payload P
}

// computeHull derives the subtree hull from the node's own range and the
// hulls of its children.
func (n *node[M, P]) computeHull() interval.Range[M] {
	h := n.rng
	if n.left != nil {
		h = h.Hull(n.left.hull)
	}
	if n.right != nil {
		h = h.Hull(n.right.hull)
	}
	return h
}

// updateHullUp recomputes subtree hulls from n up towards the root, stopping
// as soon as a hull no longer changes.
func updateHullUp[M interval.Metric[M], P comparable](n *node[M, P]) {
	for x := n; x != nil; x = x.parent {
		h := x.computeHull()
		if h.Equal(x.hull) {
			break
		}
		x.hull = h
	}
}

func (n *node[M, P]) setFrom(m M) {
	n.rng = n.rng.SetFrom(m)
	updateHullUp(n)
}

func (n *node[M, P]) setTo(m M) {
	n.rng = n.rng.SetTo(m)
	updateHullUp(n)
}

func (n *node[M, P]) setRange(r interval.Range[M]) {
	n.rng = r
	updateHullUp(n)
}
