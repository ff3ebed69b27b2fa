package snailfish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	a := mustParse(t, "[[[[4,3],4],4],[7,[[8,4],9]]]")
	b := mustParse(t, "[1,1]")
	arena := a.Arena()

	sum, err := Add(a, b)
	require.Nil(t, err)
	require.Equal(t, "[[[[0,7],4],[[7,8],[6,0]]],[8,1]]", sum.String())
	require.Same(t, arena, sum.Arena())
	require.True(t, sum.Reduced())
}

func TestAddConsumesOperands(t *testing.T) {
	a := mustParse(t, "[1,2]")
	b := mustParse(t, "[[3,4],5]")

	sum, err := Add(a, b)
	require.Nil(t, err)
	require.Equal(t, "[[1,2],[[3,4],5]]", sum.String())

	require.Equal(t, "<consumed>", a.String())
	require.Equal(t, "<consumed>", b.String())
	require.Panics(t, func() { a.Magnitude() })
	require.Panics(t, func() { b.Clone() })
	require.Panics(t, func() { Add(a, sum) })
}

func TestAddRejectsAliasing(t *testing.T) {
	a := mustParse(t, "[1,2]")
	_, err := Add(a, a)
	require.ErrorIs(t, err, AliasedOperandError)

	// still usable after the refusal
	sum, err := Add(a, a.Clone())
	require.Nil(t, err)
	require.Equal(t, "[[1,2],[1,2]]", sum.String())
}

func TestAddSharedArena(t *testing.T) {
	numbers, err := ParseAll([]string{"[1,1]", "[2,2]"})
	require.Nil(t, err)
	before := numbers[0].Arena().Len()

	sum, err := Add(numbers[0], numbers[1])
	require.Nil(t, err)
	require.Equal(t, "[[1,1],[2,2]]", sum.String())

	// no copy, just the new root
	require.Equal(t, before+1, sum.Arena().Len())
}

func TestAddSequence(t *testing.T) {
	lines := []string{
		"[[[0,[4,5]],[0,0]],[[[4,5],[2,6]],[9,5]]]",
		"[7,[[[3,7],[4,3]],[[6,3],[8,8]]]]",
		"[[2,[[0,8],[3,4]]],[[[6,7],1],[7,[1,6]]]]",
		"[[[[2,4],7],[6,[0,5]]],[[[6,8],[2,8]],[[2,1],[4,5]]]]",
		"[7,[5,[[3,8],[1,4]]]]",
		"[[2,[2,2]],[8,[8,1]]]",
		"[2,9]",
		"[1,[[[9,3],9],[[9,0],[0,7]]]]",
		"[[[5,[7,4]],7],1]",
		"[[[[4,2],2],6],[8,7]]",
	}

	sum := mustParse(t, lines[0])
	for i, line := range lines[1:] {
		next, err := Add(sum, mustParse(t, line))
		require.Nil(t, err)
		sum = next

		if i == 0 {
			require.Equal(t, "[[[[4,0],[5,4]],[[7,7],[6,0]]],[[8,[7,7]],[[7,9],[5,0]]]]", sum.String())
		}
	}

	require.Equal(t, "[[[[8,7],[7,7]],[[8,6],[7,7]]],[[[0,7],[6,6]],[8,7]]]", sum.String())
	require.Equal(t, uint64(3488), sum.Magnitude())
}

func TestMagnitude(t *testing.T) {
	cases := []struct {
		number    string
		magnitude uint64
	}{
		{"9", 9},
		{"[9,1]", 29},
		{"[1,9]", 21},
		{"[[9,1],[1,9]]", 129},
		{"[[1,2],[[3,4],5]]", 143},
		{"[[[[0,7],4],[[7,8],[6,0]]],[8,1]]", 1384},
		{"[[[[1,1],[2,2]],[3,3]],[4,4]]", 445},
		{"[[[[3,0],[5,3]],[4,4]],[5,5]]", 791},
		{"[[[[5,0],[7,4]],[5,5]],[6,6]]", 1137},
		{"[[[[8,7],[7,7]],[[8,6],[7,7]]],[[[0,7],[6,6]],[8,7]]]", 3488},
	}

	for _, c := range cases {
		require.Equal(t, c.magnitude, mustParse(t, c.number).Magnitude(), c.number)
	}
}
