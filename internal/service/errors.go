package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/book"
)

// connectError maps ledger and auth errors onto Connect codes.
func connectError(err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, book.ErrUnauthorized):
		code = connect.CodePermissionDenied
	case errors.Is(err, book.ErrNotFound), errors.Is(err, auth.ErrUnknownPhone):
		code = connect.CodeNotFound
	case errors.Is(err, book.ErrValidation),
		errors.Is(err, auth.ErrInvalidPhone),
		errors.Is(err, auth.ErrInvalidCode),
		errors.Is(err, auth.ErrWeakPassword):
		code = connect.CodeInvalidArgument
	case errors.Is(err, book.ErrCapacityExceeded), errors.Is(err, auth.ErrAdminLoginDisabled):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrCodeExpired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		code = connect.CodeUnauthenticated
	case errors.Is(err, auth.ErrTooManyAttempts):
		code = connect.CodeResourceExhausted
	case errors.Is(err, book.ErrExternalService):
		code = connect.CodeUnavailable
	case errors.Is(err, book.ErrClosed):
		code = connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}
