package snailfish

func (a *Arena) magnitude(i nodeIndex) uint64 {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return n.value
	}
	return 3*a.magnitude(n.left) + 2*a.magnitude(n.right)
}

// Magnitude is three times the left magnitude plus twice the right one; a
// leaf's magnitude is its value
func (n *Number) Magnitude() uint64 {
	n.live()
	return n.arena.magnitude(n.root)
}
