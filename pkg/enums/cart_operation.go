package enums

import "fmt"

// CartOperation labels an applied cart mutation in logs and metrics.
type CartOperation string

const (
	CartOperationAdd    CartOperation = "add"
	CartOperationUpdate CartOperation = "update"
	CartOperationRemove CartOperation = "remove"
	CartOperationClear  CartOperation = "clear"
)

var validCartOperations = []CartOperation{
	CartOperationAdd,
	CartOperationUpdate,
	CartOperationRemove,
	CartOperationClear,
}

func (o CartOperation) String() string {
	return string(o)
}

// IsValid checks whether the operation matches the canonical enum.
func (o CartOperation) IsValid() bool {
	for _, candidate := range validCartOperations {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseCartOperation converts raw strings into CartOperation.
func ParseCartOperation(value string) (CartOperation, error) {
	for _, candidate := range validCartOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart operation %q", value)
}
