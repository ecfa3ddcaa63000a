package domain

import "errors"

// Failure kinds returned by the engine. Callers match them with errors.Is.
var (
	// ErrInvalidTable marks malformed static tables; fatal at load time
	ErrInvalidTable    = errors.New("invalid tax table")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidHours    = errors.New("invalid hours")
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrInvalidRevenue  = errors.New("invalid revenue")
	ErrNoBreakEven     = errors.New("no break-even point")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidRecord   = errors.New("invalid revenue record")
	ErrInvalidActivity = errors.New("invalid activity type")
	ErrInvalidRange    = errors.New("invalid scan range")
)

// CalculationError describes a rejected input or a broken table
type CalculationError struct {
	Operation string
	Message   string
	Kind      error
}

func (e *CalculationError) Error() string {
	if e.Kind != nil {
		return e.Operation + ": " + e.Kind.Error() + ": " + e.Message
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Kind
}

// IsValidationError reports whether err is a recoverable input problem,
// as opposed to a configuration failure.
func IsValidationError(err error) bool {
	for _, kind := range []error{
		ErrInvalidMargin,
		ErrInvalidHours,
		ErrInvalidSchedule,
		ErrInvalidRevenue,
		ErrNoBreakEven,
		ErrInvalidAmount,
		ErrInvalidRecord,
		ErrInvalidActivity,
		ErrInvalidRange,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// NewError builds a CalculationError of the given kind
func NewError(op string, kind error, msg string) error {
	return &CalculationError{Operation: op, Message: msg, Kind: kind}
}
