package space

import (
	"github.com/henderiw/rangespace/pkg/interval"
)

// Red-black tree mechanics. Inserts are positional: the mutation algorithms
// always know the neighbor a new node goes next to, so there is no key-based
// insert. Removal relinks nodes structurally rather than copying contents, so
// node identity is stable across rebalances and the in-order list stays
// consistent with the tree.

func isRed[M interval.Metric[M], P comparable](n *node[M, P]) bool {
	return n != nil && n.red
}

func (s *Space[M, P]) rotateLeft(x *node[M, P]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		s.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
	// subtree content above y is unchanged, only x and y need new hulls
	x.hull = x.computeHull()
	y.hull = y.computeHull()
}

func (s *Space[M, P]) rotateRight(x *node[M, P]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		s.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y
	x.hull = x.computeHull()
	y.hull = y.computeHull()
}

func (s *Space[M, P]) rebalanceAfterInsert(n *node[M, P]) {
	for n != s.root && n.parent.red {
		// the parent is red so it is not the root and the grandparent exists
		g := n.parent.parent
		if n.parent == g.left {
			if u := g.right; isRed(u) {
				n.parent.red = false
				u.red = false
				g.red = true
				n = g
			} else {
				if n == n.parent.right {
					n = n.parent
					s.rotateLeft(n)
				}
				n.parent.red = false
				g.red = true
				s.rotateRight(g)
			}
		} else {
			if u := g.left; isRed(u) {
				n.parent.red = false
				u.red = false
				g.red = true
				n = g
			} else {
				if n == n.parent.left {
					n = n.parent
					s.rotateRight(n)
				}
				n.parent.red = false
				g.red = true
				s.rotateLeft(g)
			}
		}
	}
	s.root.red = false
}

// linkFixup finishes splicing a freshly parented node: list linkage is already
// done, the node becomes a red leaf, hulls ripple up and the tree rebalances.
func (s *Space[M, P]) linkFixup(n *node[M, P]) {
	n.left, n.right = nil, nil
	n.red = true
	n.hull = n.rng
	if n.parent != nil {
		updateHullUp(n.parent)
	}
	s.rebalanceAfterInsert(n)
	s.count++
}

// insertBefore splices node into the tree and the list immediately before
// spot.
func (s *Space[M, P]) insertBefore(spot, n *node[M, P]) {
	if spot.left == nil {
		spot.left = n
		n.parent = spot
	} else {
		// The predecessor is the rightmost node of the left subtree and
		// therefore has no right child.
		p := spot.prev
		p.right = n
		n.parent = p
	}
	s.listInsertBefore(spot, n)
	s.linkFixup(n)
}

// insertAfter splices node into the tree and the list immediately after spot.
func (s *Space[M, P]) insertAfter(spot, n *node[M, P]) {
	if spot.right == nil {
		spot.right = n
		n.parent = spot
	} else {
		// The successor is the leftmost node of the right subtree and
		// therefore has no left child.
		nx := spot.next
		nx.left = n
		n.parent = nx
	}
	s.listInsertAfter(spot, n)
	s.linkFixup(n)
}

func (s *Space[M, P]) prepend(n *node[M, P]) {
	if s.root == nil {
		s.root = n
		n.parent = nil
	} else {
		// the first node has no left child
		h := s.head
		h.left = n
		n.parent = h
	}
	s.listPrepend(n)
	s.linkFixup(n)
}

func (s *Space[M, P]) append(n *node[M, P]) {
	if s.root == nil {
		s.root = n
		n.parent = nil
	} else {
		// the last node has no right child
		t := s.tail
		t.right = n
		n.parent = t
	}
	s.listAppend(n)
	s.linkFixup(n)
}

// swapWithSuccessor exchanges the tree positions of n and its in-order
// successor by relinking, preserving node identity. Used when removing a node
// with two children; afterwards n has at most one child.
func (s *Space[M, P]) swapWithSuccessor(n *node[M, P]) {
	// n has a right child, so the successor is the leftmost node of the right
	// subtree and has no left child.
	sc := n.next
	n.red, sc.red = sc.red, n.red

	nParent, scParent := n.parent, sc.parent
	scRight := sc.right

	sc.left = n.left
	sc.left.parent = sc
	n.left = nil

	if scParent == n {
		// the successor is n's right child
		sc.parent = nParent
		sc.right = n
		n.parent = sc
	} else {
		sc.parent = nParent
		sc.right = n.right
		sc.right.parent = sc
		n.parent = scParent
		scParent.left = n
	}
	n.right = scRight
	if scRight != nil {
		scRight.parent = n
	}
	switch {
	case nParent == nil:
		s.root = sc
	case nParent.left == n:
		nParent.left = sc
	default:
		nParent.right = sc
	}
}

// removeNode unlinks n from the tree and the list and restores the red-black
// and hull invariants. The caller owns returning n to the arena.
func (s *Space[M, P]) removeNode(n *node[M, P]) {
	if n.left != nil && n.right != nil {
		s.swapWithSuccessor(n)
	}
	child := n.left
	if child == nil {
		child = n.right
	}
	parent := n.parent
	if child != nil {
		child.parent = parent
	}
	switch {
	case parent == nil:
		s.root = child
	case parent.left == n:
		parent.left = child
	default:
		parent.right = child
	}
	needFixup := !n.red
	n.left, n.right, n.parent = nil, nil, nil
	if parent != nil {
		updateHullUp(parent)
	}
	if needFixup {
		s.removeFixup(child, parent)
	}
	s.listRemove(n)
	s.count--
}

// removeFixup restores the red-black invariants after removing a black node.
// x is the child that replaced it and may be nil; parent is its parent.
func (s *Space[M, P]) removeFixup(x, parent *node[M, P]) {
	for x != s.root && !isRed(x) && parent != nil {
		if x == parent.left {
			w := parent.right // non-nil by the black height invariant
			if w.red {
				w.red = false
				parent.red = true
				s.rotateLeft(parent)
				w = parent.right
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.red = true
				x = parent
				parent = x.parent
			} else {
				if !isRed(w.right) {
					w.left.red = false
					w.red = true
					s.rotateRight(w)
					w = parent.right
				}
				w.red = parent.red
				parent.red = false
				w.right.red = false
				s.rotateLeft(parent)
				x = s.root
				parent = nil
			}
		} else {
			w := parent.left
			if w.red {
				w.red = false
				parent.red = true
				s.rotateRight(parent)
				w = parent.left
			}
			if !isRed(w.right) && !isRed(w.left) {
				w.red = true
				x = parent
				parent = x.parent
			} else {
				if !isRed(w.left) {
					w.right.red = false
					w.red = true
					s.rotateLeft(w)
					w = parent.left
				}
				w.red = parent.red
				parent.red = false
				w.left.red = false
				s.rotateRight(parent)
				x = s.root
				parent = nil
			}
		}
	}
	if x != nil {
		x.red = false
	}
}

// list linkage

func (s *Space[M, P]) listInsertBefore(spot, n *node[M, P]) {
	n.prev = spot.prev
	n.next = spot
	if spot.prev != nil {
		spot.prev.next = n
	} else {
		s.head = n
	}
	spot.prev = n
}

func (s *Space[M, P]) listInsertAfter(spot, n *node[M, P]) {
	n.next = spot.next
	n.prev = spot
	if spot.next != nil {
		spot.next.prev = n
	} else {
		s.tail = n
	}
	spot.next = n
}

func (s *Space[M, P]) listPrepend(n *node[M, P]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	} else {
		s.tail = n
	}
	s.head = n
}

func (s *Space[M, P]) listAppend(n *node[M, P]) {
	n.next = nil
	n.prev = s.tail
	if s.tail != nil {
		s.tail.next = n
	} else {
		s.head = n
	}
	s.tail = n
}

func (s *Space[M, P]) listRemove(n *node[M, P]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
