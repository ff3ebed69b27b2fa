package snailfish

import (
	"fmt"
)

// Homework numbers are stored in a flat node table.  A node is either a
// leaf holding a non-negative integer or a pair referring to its two
// children by index.  Nodes do not know their parent or their depth, so
// every positional question ("which leaf comes right before this pair?") is
// answered by walking down from the root of the number:
//
//          [[1,2],3]               0: pair(1, 4)
//            /   \                 1: pair(2, 3)
//        [1,2]    3                2: leaf 1
//        /   \                     3: leaf 2
//       1     2                    4: leaf 3
//
// Rewrites happen in place.  An explode overwrites the exploding pair with a
// leaf and leaves its children orphaned in the table; Compact drops them.

type NodeKind uint8

const (
	LeafNode NodeKind = 0
	PairNode NodeKind = 1
)

func (k NodeKind) ValidForTLS() error {
	return validateEnum(k, LeafNode, PairNode)
}

func (k NodeKind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case PairNode:
		return "pair"
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

type nodeIndex uint32

type node struct {
	kind  NodeKind
	value uint64
	left  nodeIndex
	right nodeIndex
}

// An Arena owns the nodes of one or more homework numbers.  It is not safe
// for concurrent mutation.
type Arena struct {
	nodes []node
}

func NewArena() *Arena {
	return &Arena{nodes: []node{}}
}

// Number of nodes ever allocated, including orphans
func (a *Arena) Len() int {
	return len(a.nodes)
}

func (a *Arena) newLeaf(v uint64) nodeIndex {
	a.nodes = append(a.nodes, node{kind: LeafNode, value: v})
	return nodeIndex(len(a.nodes) - 1)
}

func (a *Arena) newPair(l, r nodeIndex) nodeIndex {
	a.nodes = append(a.nodes, node{kind: PairNode, left: l, right: r})
	return nodeIndex(len(a.nodes) - 1)
}

func (a *Arena) isLeaf(i nodeIndex) bool {
	return a.nodes[i].kind == LeafNode
}

// Leaf creates a single-leaf number in the arena
func (a *Arena) Leaf(v uint64) *Number {
	return &Number{arena: a, root: a.newLeaf(v)}
}

// Copy the subtree rooted at i in src into a.  Children are copied before
// their parent, so the returned index is the last one allocated.
func (a *Arena) copyFrom(src *Arena, i nodeIndex) nodeIndex {
	n := src.nodes[i]
	if n.kind == LeafNode {
		return a.newLeaf(n.value)
	}

	l := a.copyFrom(src, n.left)
	r := a.copyFrom(src, n.right)
	return a.newPair(l, r)
}

func (a *Arena) leftmost(i nodeIndex) nodeIndex {
	for a.nodes[i].kind == PairNode {
		i = a.nodes[i].left
	}
	return i
}

func (a *Arena) rightmost(i nodeIndex) nodeIndex {
	for a.nodes[i].kind == PairNode {
		i = a.nodes[i].right
	}
	return i
}

// neighbours finds the leaves immediately before and after the subtree at
// target, in an in-order walk of the tree rooted at root.
func (a *Arena) neighbours(root, target nodeIndex) (prev, next nodeIndex, hasPrev, hasNext bool) {
	passed := false

	var walk func(i nodeIndex) bool
	walk = func(i nodeIndex) bool {
		if i == target {
			passed = true
			return false
		}

		n := a.nodes[i]
		if n.kind == PairNode {
			return walk(n.left) || walk(n.right)
		}

		if passed {
			next, hasNext = i, true
			return true
		}
		prev, hasPrev = i, true
		return false
	}

	walk(root)
	return
}

func (a *Arena) equal(i nodeIndex, b *Arena, j nodeIndex) bool {
	x, y := a.nodes[i], b.nodes[j]
	if x.kind != y.kind {
		return false
	}

	if x.kind == LeafNode {
		return x.value == y.value
	}

	return a.equal(x.left, b, y.left) && a.equal(x.right, b, y.right)
}

// Number of pairs enclosing the deepest leaf
func (a *Arena) depth(i nodeIndex) int {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return 0
	}

	l, r := a.depth(n.left), a.depth(n.right)
	if r > l {
		l = r
	}
	return l + 1
}

func (a *Arena) leaves(i nodeIndex, out []uint64) []uint64 {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return append(out, n.value)
	}

	out = a.leaves(n.left, out)
	return a.leaves(n.right, out)
}

///
/// Number
///

// A Number is a homework number: a root index into an arena.  Adding numbers
// consumes them; a consumed Number must not be used again.
type Number struct {
	arena    *Arena
	root     nodeIndex
	consumed bool
}

func (n *Number) live() {
	if n.consumed {
		panic(fmt.Errorf("snailfish: use of a consumed homework number"))
	}
}

func (n *Number) consume() {
	n.consumed = true
	n.arena = nil
}

func (n *Number) Arena() *Arena {
	n.live()
	return n.arena
}

func (n *Number) Kind() NodeKind {
	n.live()
	return n.arena.nodes[n.root].kind
}

// Clone deep-copies the number into a fresh arena
func (n *Number) Clone() *Number {
	return n.CloneInto(NewArena())
}

func (n *Number) CloneInto(a *Arena) *Number {
	n.live()
	return &Number{arena: a, root: a.copyFrom(n.arena, n.root)}
}

// Compact rewrites the number into a fresh arena holding only its reachable
// nodes.  The receiver is consumed.
func (n *Number) Compact() *Number {
	c := n.Clone()
	n.consume()
	return c
}

// Equal compares shape and leaf values, regardless of arena layout
func (n *Number) Equal(o *Number) bool {
	n.live()
	o.live()
	return n.arena.equal(n.root, o.arena, o.root)
}

func (n *Number) Depth() int {
	n.live()
	return n.arena.depth(n.root)
}

// Leaves lists the leaf values in order
func (n *Number) Leaves() []uint64 {
	n.live()
	return n.arena.leaves(n.root, nil)
}
