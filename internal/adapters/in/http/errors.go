package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrNotEntitled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody hides internal failures; client errors carry their message.
func errorBody(status int, err error) api.Error {
	message := http.StatusText(status)

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	case status < http.StatusInternalServerError:
		message = err.Error()
	}

	return api.Error{Code: status, Message: message}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(status, errorBody(status, err))
}

// ErrorHandler renders errors that escape the handlers, such as parameter
// binding failures and unknown routes, in the same {code, message} shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	status := statusFor(err)
	_ = ctx.JSON(status, errorBody(status, err))
}
