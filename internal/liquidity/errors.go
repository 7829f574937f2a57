package liquidity

import (
	"errors"
	"fmt"
)

// Kind classifies where a liquidity operation failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindDeposit
	KindCalculation
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindDeposit:
		return "deposit"
	case KindCalculation:
		return "calculation"
	default:
		return "unknown"
	}
}

var (
	ErrNilSigner      = errors.New("signer is required")
	ErrInvalidAmount  = errors.New("amount must be a non-negative integer")
	ErrZeroReserve    = errors.New("native reserve is zero")
	ErrInvalidReserve = errors.New("reserves must be non-negative")
)

// Error is returned by every failing operation in this package. Callers
// branch on Kind; the wrapped error keeps the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
