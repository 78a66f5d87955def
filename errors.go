package electricitytrading

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnsupported      = errors.New("unsupported")
	ErrClientClosed     = errors.New("client closed")

	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnavailable        = errors.New("service unavailable")
	ErrDeadlineExceeded   = errors.New("deadline exceeded")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInternal           = errors.New("internal server error")
	ErrUnknown            = errors.New("unknown error")
)

// APIError is a failed call as reported by the server.
type APIError struct {
	Method  string
	Code    codes.Code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %s: %s", e.Method, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument, codes.OutOfRange:
		return ErrInvalidArgument
	case codes.FailedPrecondition:
		return ErrFailedPrecondition
	case codes.PermissionDenied:
		return ErrPermissionDenied
	case codes.Unauthenticated:
		return ErrUnauthenticated
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return ErrUnavailable
	case codes.DeadlineExceeded:
		return ErrDeadlineExceeded
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.Internal, codes.DataLoss:
		return ErrInternal
	case codes.Unimplemented:
		return ErrUnsupported
	case codes.Canceled:
		return context.Canceled
	}
	return ErrUnknown
}

// GRPCStatus lets status.Code and status.FromError see through the wrapper.
func (e *APIError) GRPCStatus() *status.Status { return status.New(e.Code, e.Message) }

// IsRetryable reports whether the same call may succeed if sent again.
func (e *APIError) IsRetryable() bool {
	switch e.Code {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}

// terminal codes end a stream instead of triggering a reconnect.
func (e *APIError) terminal() bool {
	switch e.Code {
	case codes.Unauthenticated, codes.PermissionDenied, codes.InvalidArgument, codes.Unimplemented:
		return true
	}
	return false
}

// toAPIError converts an RPC error. Errors without a gRPC status, such as
// context errors raised locally, are returned unchanged.
func toAPIError(method string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s, ok := status.FromError(err)
	if !ok {
		return err
	}
	return &APIError{Method: method, Code: s.Code(), Message: s.Message()}
}
