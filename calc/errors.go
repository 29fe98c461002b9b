package calc

import "errors"

// Sentinel errors latched by Buffer, all rendered as Sentinel
var (
	ErrInvalidStart    = errors.New("operator with empty buffer")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrOverflow        = errors.New("display overflow")
	ErrNonFinite       = errors.New("result is not finite")
	ErrNotNumber       = errors.New("token is not a number")
	ErrMalformedNumber = errors.New("malformed number")
	ErrUnknownOperator = errors.New("unknown operator")
)
