package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrAssetNotFound   = errors.New("Asset not found")
	ErrInvalidQuantity = errors.New("Quantity must be at least 1")
)

// InsufficientSupplyError rejects a request for more tokens than remain.
// Available is the supply observed when the request was rejected.
type InsufficientSupplyError struct {
	Available int64
}

func (e *InsufficientSupplyError) Error() string {
	return fmt.Sprintf("Only %d tokens available", e.Available)
}
