package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/event"
)

type eventApi struct {
	svc      *event.Service
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *event.Service, validate *validator.Validate) {
	api := eventApi{svc: svc, validate: validate}

	g.GET("/calendar", api.week, jwt)

	eg := g.Group("/events", jwt)
	eg.GET("", api.query)
	eg.POST("", api.create)

	dg := eg.Group("/:id", objectMiddleware(func(ctx context.Context, userID, id string) (interface{}, error) {
		return svc.GetByID(ctx, userID, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)

	// registered after the detail group, whose middleware claims every method on "/:id"
	eg.DELETE("/:id", api.destroy)
}

func (api *eventApi) query(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var filter event.QueryFilter
	if filter.From, err = queryTime(ctx, "from"); err != nil {
		return err
	}
	if filter.To, err = queryTime(ctx, "to"); err != nil {
		return err
	}

	events, err := api.svc.Query(ctx.Request().Context(), userID, filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.JSON(http.StatusOK, events)
}

// week returns the calendar week (Monday to Sunday) holding `?date=`, the current week by default.
func (api *eventApi) week(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	date, err := queryTime(ctx, "date")
	if err != nil {
		return err
	}

	week, err := api.svc.Week(ctx.Request().Context(), userID, date)
	if err != nil {
		return errors.Wrap(err, "building calendar week")
	}
	return ctx.JSON(http.StatusOK, week)
}

func (api *eventApi) create(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	e, err := contextObject[event.Event](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventApi) update(ctx echo.Context) error {
	e, err := contextObject[event.Event](ctx)
	if err != nil {
		return err
	}
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(e, api.validate); err != nil {
		return err
	}

	e, err = api.svc.Update(ctx.Request().Context(), e, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
