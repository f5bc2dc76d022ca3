// Package result provides the outcome type returned by every catalog operation.
package result

// Response carries whether an operation succeeded, a human readable message and an optional payload.
// Err holds the classified cause of a failure and is never serialized.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  T      `json:"result"`
	Err     error  `json:"-"`
}

// OK returns a successful response with the given payload.
func OK[T any](payload T, message string) Response[T] {
	return Response[T]{Success: true, Message: message, Result: payload}
}

// Fail returns a failed response without payload.
func Fail[T any](err error, message string) Response[T] {
	return Response[T]{Message: message, Err: err}
}

// Partial returns a failed response that still carries a payload.
func Partial[T any](payload T, err error, message string) Response[T] {
	return Response[T]{Message: message, Result: payload, Err: err}
}

// Cast moves a failed response to another payload type, keeping its message and cause.
func Cast[T, U any](r Response[U]) Response[T] {
	return Response[T]{Success: r.Success, Message: r.Message, Err: r.Err}
}
