package snailfish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExplodeStep(t *testing.T) {
	cases := []struct {
		before, after string
	}{
		// no leaf to the left
		{"[[[[[9,8],1],2],3],4]", "[[[[0,9],2],3],4]"},
		// no leaf to the right
		{"[7,[6,[5,[4,[3,2]]]]]", "[7,[6,[5,[7,0]]]]"},
		{"[[6,[5,[4,[3,2]]]],1]", "[[6,[5,[7,0]]],3]"},
		// only the leftmost candidate explodes
		{"[[3,[2,[1,[7,3]]]],[6,[5,[4,[3,2]]]]]", "[[3,[2,[8,0]]],[9,[5,[4,[3,2]]]]]"},
		{"[[3,[2,[8,0]]],[9,[5,[4,[3,2]]]]]", "[[3,[2,[8,0]]],[9,[5,[7,0]]]]"},
	}

	r := &Reducer{}
	for _, c := range cases {
		n := mustParse(t, c.before)
		rule, err := r.Step(n)
		require.Nil(t, err)
		require.Equal(t, RuleExplode, rule)
		require.Equal(t, c.after, n.String())
	}
}

func TestExplodeOutranksSplit(t *testing.T) {
	// the split candidate sits left of the explode candidate
	n := mustParse(t, "[[12,3],[[[[1,1],0],0],0]]")
	rule, err := (&Reducer{}).Step(n)
	require.Nil(t, err)
	require.Equal(t, RuleExplode, rule)
	require.Equal(t, "[[12,4],[[[0,1],0],0]]", n.String())

	rule, err = (&Reducer{}).Step(n)
	require.Nil(t, err)
	require.Equal(t, RuleSplit, rule)
	require.Equal(t, "[[[6,6],4],[[[0,1],0],0]]", n.String())
}

func TestSplitStep(t *testing.T) {
	cases := []struct {
		before, after string
	}{
		{"[10,0]", "[[5,5],0]"},
		{"[11,0]", "[[5,6],0]"},
		{"[0,[12,13]]", "[0,[[6,6],13]]"},
		{"[[1,15],[10,2]]", "[[1,[7,8]],[10,2]]"},
	}

	r := &Reducer{}
	for _, c := range cases {
		n := mustParse(t, c.before)
		rule, err := r.Step(n)
		require.Nil(t, err)
		require.Equal(t, RuleSplit, rule)
		require.Equal(t, c.after, n.String())
	}
}

func TestSplitChainsWithinReduce(t *testing.T) {
	n := mustParse(t, "[19,0]")
	stats, err := Reduce(n)
	require.Nil(t, err)
	require.Equal(t, "[[9,[5,5]],0]", n.String())
	require.Equal(t, Stats{Explodes: 0, Splits: 2}, stats)

	leaf := mustParse(t, "19")
	_, err = Reduce(leaf)
	require.Nil(t, err)
	require.Equal(t, "[9,[5,5]]", leaf.String())
}

func TestWorkedExampleTrace(t *testing.T) {
	a := mustParse(t, "[[[[4,3],4],4],[7,[[8,4],9]]]")
	b := mustParse(t, "[1,1]")
	n, err := Pair(a, b)
	require.Nil(t, err)
	require.Equal(t, "[[[[[4,3],4],4],[7,[[8,4],9]]],[1,1]]", n.String())

	trace := []struct {
		rule  Rule
		after string
	}{
		{RuleExplode, "[[[[0,7],4],[7,[[8,4],9]]],[1,1]]"},
		{RuleExplode, "[[[[0,7],4],[15,[0,13]]],[1,1]]"},
		{RuleSplit, "[[[[0,7],4],[[7,8],[0,13]]],[1,1]]"},
		{RuleSplit, "[[[[0,7],4],[[7,8],[0,[6,7]]]],[1,1]]"},
		{RuleExplode, "[[[[0,7],4],[[7,8],[6,0]]],[8,1]]"},
		{RuleNone, "[[[[0,7],4],[[7,8],[6,0]]],[8,1]]"},
	}

	r := &Reducer{}
	for _, step := range trace {
		rule, err := r.Step(n)
		require.Nil(t, err)
		require.Equal(t, step.rule, rule)
		require.Equal(t, step.after, n.String())
	}
	require.Equal(t, uint64(1384), n.Magnitude())
}

func TestReduceIdempotent(t *testing.T) {
	n := mustParse(t, "[[[[0,7],4],[[7,8],[6,0]]],[8,1]]")
	require.True(t, n.Reduced())
	before := n.Arena().Len()

	stats, err := Reduce(n)
	require.Nil(t, err)
	require.Equal(t, Stats{}, stats)
	require.Equal(t, "[[[[0,7],4],[[7,8],[6,0]]],[8,1]]", n.String())
	require.Equal(t, before, n.Arena().Len())
	require.Equal(t, uint64(1384), n.Magnitude())

	rule, err := (&Reducer{}).Step(n)
	require.Nil(t, err)
	require.Equal(t, RuleNone, rule)
}

func TestReducedInvariant(t *testing.T) {
	n := mustParse(t, "[[[[[4,3],4],4],[7,[[8,4],9]]],[[[[99,3],4],4],[7,[[8,4],9]]]]")
	_, err := Reduce(n)
	require.Nil(t, err)
	require.True(t, n.Reduced())
	require.LessOrEqual(t, n.Depth(), explodeDepth)
	for _, v := range n.Leaves() {
		require.Less(t, v, uint64(splitThreshold))
	}
}

func TestReduceDidNotConverge(t *testing.T) {
	n := mustParse(t, "[19,0]")
	_, err := (&Reducer{MaxSteps: 1}).Reduce(n)
	require.ErrorIs(t, err, ReductionDidNotConvergeError)

	n = mustParse(t, "[19,0]")
	stats, err := (&Reducer{MaxSteps: 2}).Reduce(n)
	require.Nil(t, err)
	require.Equal(t, 2, stats.Steps())
}

func TestExplodeOverflow(t *testing.T) {
	before := "[18446744073709551615,[[[[1,1],0],0],0]]"
	n := mustParse(t, before)

	_, err := (&Reducer{}).Step(n)
	require.ErrorIs(t, err, ValueOverflowError)
	require.Equal(t, before, n.String())

	_, err = Reduce(n)
	require.ErrorIs(t, err, ValueOverflowError)
}

func TestApplyRejectsWrongNode(t *testing.T) {
	n := mustParse(t, "[[1,2],3]")
	require.ErrorIs(t, n.arena.explodeAt(n.root, n.root), InvalidNodeError)
	require.ErrorIs(t, n.arena.splitAt(n.root), InvalidNodeError)
}

func TestRuleString(t *testing.T) {
	require.Equal(t, "none", RuleNone.String())
	require.Equal(t, "explode", RuleExplode.String())
	require.Equal(t, "split", RuleSplit.String())
	require.Equal(t, "Rule(9)", Rule(9).String())
}
