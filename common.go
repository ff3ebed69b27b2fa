package snailfish

import (
	"fmt"
)

var (
	MalformedNotationError       = fmt.Errorf("Malformed homework notation")
	ReductionDidNotConvergeError = fmt.Errorf("Reduction did not converge")
	ValueOverflowError           = fmt.Errorf("Leaf value overflow")
	EmptyHomeworkError           = fmt.Errorf("No homework numbers to combine")
	AliasedOperandError          = fmt.Errorf("Operands share nodes")
	InvalidNodeError             = fmt.Errorf("Invalid node")
)

func validateEnum(v interface{}, known ...interface{}) error {
	for _, kv := range known {
		if v == kv {
			return nil
		}
	}
	return fmt.Errorf("Unknown enum value: %v", v)
}
