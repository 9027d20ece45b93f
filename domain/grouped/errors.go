package grouped

import "errors"

// ErrInvalidInput is matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid grouped data")

// Reasons reported by the stats engine
const (
	ReasonZeroTotal          = "total frequency is zero"
	ReasonNonPositiveTotal   = "total frequency is not positive"
	ReasonMedianUndetermined = "median class undetermined"
	ReasonNonFiniteResult    = "result is not a finite number"
)

// InvalidInputError reports grouped data the engine cannot compute statistics for
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates an InvalidInputError with the given reason
func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
