package wordmaze

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometry is returned when box edges and sizes do not describe a box
	ErrGeometry = errors.New("invalid box geometry")

	// ErrUnsupported is returned for operations with no implementation
	ErrUnsupported = errors.New("unsupported operation")
)

// RebaseError reports an origin change that cannot be performed
type RebaseError struct {
	From Origin
	To   Origin
}

func (e *RebaseError) Error() string {
	return fmt.Sprintf("unsupported rebase operation: from %s to %s", e.From, e.To)
}

func (e *RebaseError) Unwrap() error { return ErrUnsupported }
