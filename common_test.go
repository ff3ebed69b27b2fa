package snailfish

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEnum(t *testing.T) {
	require.Nil(t, validateEnum(PairNode, LeafNode, PairNode))
	require.Nil(t, validateEnum(RuleSplit, RuleExplode, RuleSplit))

	require.Error(t, validateEnum(NodeKind(0xFF), LeafNode, PairNode))

	// same value, different type
	require.Error(t, validateEnum(uint8(1), LeafNode, PairNode))
}

func TestSentinelErrorsDistinct(t *testing.T) {
	all := []error{
		MalformedNotationError,
		ReductionDidNotConvergeError,
		ValueOverflowError,
		EmptyHomeworkError,
		AliasedOperandError,
		InvalidNodeError,
	}

	for i, a := range all {
		for j, b := range all {
			require.Equal(t, i == j, errors.Is(a, b), "%v / %v", a, b)
		}
	}
}

//////////

func unhex(h string) []byte {
	b, err := hex.DecodeString(h)
	if err != nil {
		panic(err)
	}
	return b
}
