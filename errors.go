package investpro

import (
	"errors"
)

// Local input errors. They are detected before any call to the backend and
// are always reported wrapped in a *ValidationError naming the field.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidKind      = errors.New("unknown operation")
	ErrNoAsset          = errors.New("select an asset")
	ErrPriceUnavailable = errors.New("price unavailable")
	ErrInvalidPeriod    = errors.New("start date must not be after end date")
	ErrInvalidCPF       = errors.New("CPF must have 11 digits")
	ErrInvalidTicker    = errors.New("ticker is required")
	ErrInvalidMonths    = errors.New("months must be a positive integer")
)

// ErrInsufficientFunds is the sufficiency error: the outgoing cash flow exceeds
// the available balance. It is not a *ValidationError.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSummaryUnavailable is returned when a projection needs the account
// summary before it has been fetched.
var ErrSummaryUnavailable = errors.New("account summary unavailable")

// ValidationError reports a malformed or missing user input.
type ValidationError struct {
	Field string // form field at fault, e.g. "amount"
	Err   error
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// UserMessage is the text shown next to the offending field.
func (e *ValidationError) UserMessage() string { return e.Err.Error() }

func invalid(field string, err error) error { return &ValidationError{Field: field, Err: err} }

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Message converts any error into the string displayed to the user.
// Errors that know their display text (validation, backend) provide it;
// other errors use their Error() text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var m interface{ UserMessage() string }
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}
