package snailfish

import (
	"fmt"
)

// join builds [a, b] in a's arena, copying b over if it lives elsewhere.
// Both operands are consumed.
func join(a, b *Number) (*Number, error) {
	a.live()
	b.live()
	if a == b || (a.arena == b.arena && a.root == b.root) {
		return nil, fmt.Errorf("snailfish.combine: %w", AliasedOperandError)
	}

	arena := a.arena
	right := b.root
	if b.arena != arena {
		right = arena.copyFrom(b.arena, b.root)
	}

	sum := &Number{arena: arena, root: arena.newPair(a.root, right)}
	a.consume()
	b.consume()
	return sum, nil
}

// Pair places a and b under a new root without reducing
func Pair(a, b *Number) (*Number, error) {
	return join(a, b)
}

// Add is homework addition: pair the operands, then reduce.  Both operands
// are consumed; clone them first to keep using them.
func (r *Reducer) Add(a, b *Number) (*Number, error) {
	sum, err := join(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := r.Reduce(sum); err != nil {
		return nil, err
	}
	return sum, nil
}

func Add(a, b *Number) (*Number, error) {
	return defaultReducer.Add(a, b)
}
