package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Entity resolves the :id path parameter with find and stores the result
// under key before the handler runs. Ids that are not a digit sequence are
// answered with 404, the same as ids that do not exist; find must report a
// missing entity with an error unwrapping to domain.ErrNotFound.
func Entity[T any](key string, find func(ctx context.Context, id uint) (*T, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(c.Param("id"), 10, 0)
			if err != nil {
				return echo.ErrNotFound
			}

			entity, err := find(c.Request().Context(), uint(id))
			if err != nil {
				return err
			}

			c.Set(key, entity)
			return next(c)
		}
	}
}
