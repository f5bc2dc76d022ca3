package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/result"
)

// recoverInto turns a panic in a service operation into a failed response.
// It must be deferred directly by the operation.
func recoverInto[T any](ctx context.Context, logger *slog.Logger, res *result.Response[T]) {
	if rvr := recover(); rvr != nil {
		logger.ErrorContext(ctx, "Panic recovered", "panic", rvr)
		*res = result.Fail[T](fmt.Errorf("%w: %v", perrors.ErrUnexpected, rvr),
			fmt.Sprintf("An unexpected error occurred: %v", rvr))
	}
}

func blankID[T any]() result.Response[T] {
	return result.Fail[T](fmt.Errorf("%w: empty product id", perrors.ErrInvalidArgument), "Product id cannot be empty.")
}

// invalidInput reports a validation failure with the message of the failed rule.
func invalidInput[T any](err error, fallback string) result.Response[T] {
	var vErr *catalog.ValidationError
	if errors.As(err, &vErr) {
		return result.Fail[T](err, vErr.Message)
	}
	return result.Fail[T](err, fallback)
}
