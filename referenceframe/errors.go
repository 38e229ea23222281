package referenceframe

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAxes is returned when an axes triple does not describe a signed permutation.
	ErrInvalidAxes = errors.New("invalid axis permutation")
	// ErrInvalidReference is returned when camera direction and up vectors cannot form a frame.
	ErrInvalidReference = errors.New("invalid camera reference vectors")
)

// NewInvalidAxesError wraps ErrInvalidAxes with the offending axes.
func NewInvalidAxesError(axes [3]string, reason string) error {
	return errors.Wrapf(ErrInvalidAxes, "%q: %s", axes, reason)
}

// NewInvalidReferenceError wraps ErrInvalidReference with a description.
func NewInvalidReferenceError(reason string) error {
	return errors.Wrap(ErrInvalidReference, reason)
}
