package http

import (
	"errors"
	"net/http"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes let the chat side pick the message shown to the user.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeNotOrderCourier   = "not_order_courier"
	CodeAlreadyProcessed  = "already_processed"
	CodeBalanceRejected   = "balance_rejected"
	CodeIntakeClosed      = "intake_closed"
	CodeBelowMinimum      = "below_minimum_order"
	CodeEmptyCart         = "empty_cart"
	CodeTemporarilyFailed = "temporarily_unavailable"
	CodeInternal          = "internal_error"
)

type mappedError struct {
	status int
	code   string
}

// classify maps use case outcomes onto HTTP statuses. The first match wins,
// so specific outcomes come before the generic validation errors.
func classify(err error) mappedError {
	switch {
	case errors.Is(err, errs.ErrInvalidTransition):
		return mappedError{http.StatusConflict, CodeAlreadyProcessed}
	case errors.Is(err, commands.ErrBalanceRejected):
		return mappedError{http.StatusConflict, CodeBalanceRejected}
	case errors.Is(err, order.ErrNotOrderCourier):
		return mappedError{http.StatusForbidden, CodeNotOrderCourier}
	case errors.Is(err, commands.ErrNotAdmin):
		return mappedError{http.StatusForbidden, CodeForbidden}
	case errors.Is(err, commands.ErrOrderIntakeClosed):
		return mappedError{http.StatusLocked, CodeIntakeClosed}
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, commands.ErrDrinkNotFound):
		return mappedError{http.StatusNotFound, CodeNotFound}
	case errors.Is(err, commands.ErrBelowMinimumOrder):
		return mappedError{http.StatusBadRequest, CodeBelowMinimum}
	case errors.Is(err, commands.ErrEmptyCart):
		return mappedError{http.StatusBadRequest, CodeEmptyCart}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return mappedError{http.StatusBadRequest, CodeInvalidRequest}
	case errors.Is(err, errs.ErrPersistence),
		errors.Is(err, concurrency.ErrLockTimeout),
		errors.Is(err, order.ErrDuplicateDisplayNo):
		return mappedError{http.StatusServiceUnavailable, CodeTemporarilyFailed}
	default:
		return mappedError{http.StatusInternalServerError, CodeInternal}
	}
}

// fail writes the error response. Business outcomes are not logged; only
// faults are.
func (s *Server) fail(ctx echo.Context, err error) error {
	m := classify(err)
	if m.status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	msg := err.Error()
	if m.status == http.StatusInternalServerError {
		msg = http.StatusText(m.status)
	}
	return ctx.JSON(m.status, Error{Code: m.code, Message: msg})
}

func badRequest(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: CodeInvalidRequest, Message: msg})
}
