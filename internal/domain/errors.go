package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrIDMismatch       = errors.New("product id in path does not match id in body")
	// ErrWriteConflict is a failed overwrite of a row that still exists.
	ErrWriteConflict = errors.New("product write conflict")
)
