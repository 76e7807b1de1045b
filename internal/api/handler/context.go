package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// Context keys under which the entity middleware stores resolved path
// entities.
const (
	AuthorKey = "author"
	GenreKey  = "genre"
	BookKey   = "book"
)

// ctxUser returns the user injected by the Auth middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ctxEntity returns the path entity stored under key. Its absence means the
// route was registered without the entity middleware.
func ctxEntity[T any](c echo.Context, key string) (*T, error) {
	v, _ := c.Get(key).(*T)
	if v == nil {
		return nil, echo.ErrNotFound
	}
	return v, nil
}
