package trading

import "errors"

var (
	ErrMissingFields     = errors.New("Missing required fields: assetId, quantity, buyerName")
	ErrBuyerNameRequired = errors.New("Buyer name is required")
)

// ValidationError marks a rejected request whose input the caller can fix.
// It is returned before anything is written.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
