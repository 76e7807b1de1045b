package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// decodeJSON fills dst from the request body. An empty body leaves dst
// untouched so that validation reports every required field. A value of the
// wrong JSON type does not stop decoding: the remaining fields are validated
// as usual and the offending top-level field reports "not valid". A body of
// the wrong type reports "not valid" at the root and a body that is not JSON
// at all reports "malformed".
func decodeJSON(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	err = json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return form.Invalid(form.MsgMalformed)
	}
	if typeErr.Field == "" {
		return form.Invalid(form.MsgInvalid)
	}

	// Unmarshal skips the mistyped value and keeps going, so dst holds
	// everything else the client sent.
	field, _, _ := strings.Cut(typeErr.Field, ".")
	tree := form.Validate(dst)
	tree.Child(field).Errors = []string{form.MsgInvalid}
	return tree.Err()
}

// bindOffset reads the offset query parameter.
func bindOffset(c echo.Context) (int, error) {
	var offset int
	errs := echo.QueryParamsBinder(c).FailFast(false).Int("offset", &offset).BindErrors()
	return offset, queryErrors(errs)
}

// bindBookQuery reads offset and the book list filters.
func bindBookQuery(c echo.Context) (ports.BookFilter, int, error) {
	var (
		filter ports.BookFilter
		offset int
	)
	errs := echo.QueryParamsBinder(c).
		FailFast(false).
		Int("offset", &offset).
		String("title", &filter.Title).
		Uint("author_id", &filter.AuthorID).
		Uint("genre_id", &filter.GenreID).
		BindErrors()
	return filter, offset, queryErrors(errs)
}

// queryErrors turns binder failures into a validation tree keyed by
// parameter name.
func queryErrors(errs []error) error {
	tree := &form.Node{}
	for _, err := range errs {
		var be *echo.BindingError
		if !errors.As(err, &be) {
			return err
		}
		tree.AddField(be.Field, form.MsgInvalid)
	}
	return tree.Err()
}
