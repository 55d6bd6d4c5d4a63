package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// ErrClassNotFound is reported by introspectors that cannot locate a class.
// Resolution failures caused by an unknown class always match it with errors.Is.
var ErrClassNotFound = goerrors.New("class not found")

// UnresolvableClassError is returned when a class, or one of the ancestors it
// asked to inherit from, cannot be located by the introspector.
type UnresolvableClassError struct {
	*BaseError
	ClassID string   // class that could not be resolved
	Chain   []string // classes visited before the failure, outermost first
}

// NewUnresolvableClassError creates a resolution failure for classID
func NewUnresolvableClassError(classID string, chain []string, cause error) *UnresolvableClassError {
	message := fmt.Sprintf("cannot resolve class '%s'", classID)
	if len(chain) > 0 {
		message = fmt.Sprintf("%s (via %s)", message, strings.Join(chain, " -> "))
	}

	base := Wrap(ResolutionErrorCode, message, cause).
		WithContext("class", classID).
		WithSuggestion("Check that the class is declared and visible to the introspector")

	visited := make([]string, len(chain))
	copy(visited, chain)

	return &UnresolvableClassError{
		BaseError: base,
		ClassID:   classID,
		Chain:     visited,
	}
}

// NewInheritanceCycleError reports a parent chain that loops back on itself
func NewInheritanceCycleError(classID string, chain []string) *UnresolvableClassError {
	err := NewUnresolvableClassError(classID, chain, nil)
	err.Message = fmt.Sprintf("inheritance cycle detected at class '%s' (via %s)", classID, strings.Join(chain, " -> "))
	err.Hints = []string{"Remove the inherit tag from one of the classes in the cycle"}
	return err
}
