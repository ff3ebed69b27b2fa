package snailfish

import (
	"fmt"

	"github.com/cisco/go-tls-syntax"
)

// A number travels as its nodes in pre-order:
//
//   struct {
//       NodeKind kind;
//       uint64 value;        // zero for pairs
//   } WireNode;
//
//   struct {
//       WireNode nodes<0..2^32-1>;
//   } WireNumber;
//
// A pair is followed by its left subtree, then its right subtree.

type WireNode struct {
	Kind  NodeKind
	Value uint64
}

type wireNumber struct {
	Nodes []WireNode `tls:"head=4"`
}

func (a *Arena) flatten(i nodeIndex, out []WireNode) []WireNode {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return append(out, WireNode{Kind: LeafNode, Value: n.value})
	}

	out = append(out, WireNode{Kind: PairNode})
	out = a.flatten(n.left, out)
	return a.flatten(n.right, out)
}

// Rebuild one tree from wire nodes starting at *pos
func (a *Arena) unflatten(nodes []WireNode, pos *int) (nodeIndex, error) {
	if *pos >= len(nodes) {
		return 0, fmt.Errorf("snailfish.codec: %w: truncated node list", InvalidNodeError)
	}

	wn := nodes[*pos]
	*pos += 1
	if err := wn.Kind.ValidForTLS(); err != nil {
		return 0, fmt.Errorf("snailfish.codec: %w: %v", InvalidNodeError, err)
	}

	if wn.Kind == LeafNode {
		return a.newLeaf(wn.Value), nil
	}

	if wn.Value != 0 {
		return 0, fmt.Errorf("snailfish.codec: %w: pair carries value %d", InvalidNodeError, wn.Value)
	}

	l, err := a.unflatten(nodes, pos)
	if err != nil {
		return 0, err
	}
	r, err := a.unflatten(nodes, pos)
	if err != nil {
		return 0, err
	}
	return a.newPair(l, r), nil
}

func (n Number) MarshalTLS() ([]byte, error) {
	n.live()
	enc, err := syntax.Marshal(wireNumber{
		Nodes: n.arena.flatten(n.root, nil),
	})
	if err != nil {
		return nil, fmt.Errorf("snailfish.codec: Marshal failed: %v", err)
	}
	return enc, nil
}

// UnmarshalTLS decodes into a fresh arena, replacing whatever n held
func (n *Number) UnmarshalTLS(data []byte) (int, error) {
	var wire wireNumber
	read, err := syntax.Unmarshal(data, &wire)
	if err != nil {
		return 0, fmt.Errorf("snailfish.codec: Unmarshal failed: %v", err)
	}

	a := NewArena()
	pos := 0
	root, err := a.unflatten(wire.Nodes, &pos)
	if err != nil {
		return 0, err
	}
	if pos != len(wire.Nodes) {
		return 0, fmt.Errorf("snailfish.codec: %w: %d trailing nodes", InvalidNodeError, len(wire.Nodes)-pos)
	}

	*n = Number{arena: a, root: root}
	return read, nil
}

// Marshal and Unmarshal are shorthands for the TLS encoding of a number
func Marshal(n *Number) ([]byte, error) {
	return n.MarshalTLS()
}

func Unmarshal(data []byte) (*Number, error) {
	n := &Number{}
	if _, err := n.UnmarshalTLS(data); err != nil {
		return nil, err
	}
	return n, nil
}
