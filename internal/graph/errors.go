package graph

import (
	"context"
	"errors"

	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/services"
)

// Error codes reported under extensions.code.
const (
	CodeBadUserInput         = "BAD_USER_INPUT"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeInternal             = "INTERNAL_SERVER_ERROR"
)

// Error is a resolver failure as the client sees it. It satisfies
// gqlerrors.ExtendedError so the code ends up in the response.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var errUnauthenticated = &Error{Message: "unauthenticated", Code: CodeUnauthenticated}

// toGraphError classifies a service error. Anything unclassified is logged and
// hidden behind a generic message.
func (r *Resolver) toGraphError(ctx context.Context, op string, err error) error {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}

	code := ""
	switch {
	case errors.Is(err, services.ErrValidation):
		code = CodeBadUserInput
	case errors.Is(err, services.ErrAuthentication):
		code = CodeAuthenticationFailed
	case errors.Is(err, services.ErrForbidden):
		code = CodeForbidden
	case errors.Is(err, services.ErrNotFound):
		code = CodeNotFound
	}

	requestID := helpers.RequestIDFromContext(ctx)
	if code == "" {
		r.logger.ErrorContext(ctx, "resolver failed",
			"request_id", requestID,
			"operation", op,
			"error", err,
		)
		return &Error{Message: "internal server error", Code: CodeInternal}
	}

	r.logger.DebugContext(ctx, "resolver rejected request",
		"request_id", requestID,
		"operation", op,
		"code", code,
		"error", err,
	)
	return &Error{Message: err.Error(), Code: code}
}
