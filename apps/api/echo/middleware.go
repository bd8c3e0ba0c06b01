package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const contextObjectKey = "object"

// objectMiddleware loads the `:id` object owned by the context user and stores it under "object".
// Objects of other users are reported as not found by `get`.
func objectMiddleware(get func(ctx context.Context, userID, id string) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := contextUserID(ctx)
			if err != nil {
				return err
			}
			obj, err := get(ctx.Request().Context(), userID, ctx.Param("id"))
			if err != nil {
				return errors.Wrap(err, "loading context object")
			}
			ctx.Set(contextObjectKey, obj)
			return next(ctx)
		}
	}
}

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(contextObjectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}
