// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrValidation      = errors.New("invalid product")
	ErrDuplicateTitle  = errors.New("duplicate product title")
	ErrInvalidFile     = errors.New("invalid product file")
	ErrPersistence     = errors.New("product file access failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnexpected      = errors.New("unexpected error")
)
