package snailfish

import (
	"fmt"

	"github.com/cisco/go-tls-syntax"
	"golang.org/x/crypto/blake2b"
)

var (
	// Domain separation for the tree hash
	leafHashPrefix = []byte{0x01}
	pairHashPrefix = []byte{0x02}
)

type leafHashInput struct {
	Value uint64
}

func leafHash(v uint64) [32]byte {
	enc, err := syntax.Marshal(leafHashInput{Value: v})
	if err != nil {
		panic(fmt.Errorf("snailfish.fingerprint: Marshal error %v", err))
	}

	data := make([]byte, 0, len(leafHashPrefix)+len(enc))
	data = append(data, leafHashPrefix...)
	data = append(data, enc...)
	return blake2b.Sum256(data)
}

func pairHash(l, r [32]byte) [32]byte {
	data := make([]byte, 0, len(pairHashPrefix)+2*blake2b.Size256)
	data = append(data, pairHashPrefix...)
	data = append(data, l[:]...)
	data = append(data, r[:]...)
	return blake2b.Sum256(data)
}

func (a *Arena) treeHash(i nodeIndex) [32]byte {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return leafHash(n.value)
	}
	return pairHash(a.treeHash(n.left), a.treeHash(n.right))
}

// Fingerprint is a merkle hash of the number's shape and leaf values.  Equal
// numbers have equal fingerprints whatever arena they live in.
func (n *Number) Fingerprint() [32]byte {
	n.live()
	return n.arena.treeHash(n.root)
}
