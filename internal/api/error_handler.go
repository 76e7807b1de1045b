package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status string     `json:"status"`
	Errors *form.Node `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as a 400 with their field tree.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//
// Every error body is {"status":"error","errors":<tree>}; errors without
// fields carry their message at the root of the tree.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, tree := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Status: "error", Errors: tree})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, *form.Node) {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Tree
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, message(nf.Error())
	}

	// Echo's own errors (404 from router, 405, 429 from the rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Msg("http error")
		}
		return he.Code, message(fmt.Sprintf("%v", he.Message))
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, message("Not found.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, message("Invalid credentials.")
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, message("Authentication required.")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, message("Access denied.")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, message("Internal server error.")
}

func message(msg string) *form.Node {
	n := &form.Node{}
	n.Add(msg)
	return n
}
