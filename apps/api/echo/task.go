package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/ordering"
	"github.com/NicoleRU22/Studynest/core/task"
)

type taskApi struct {
	svc      *task.Service
	validate *validator.Validate
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *task.Service, validate *validator.Validate) {
	api := taskApi{svc: svc, validate: validate}

	tg := g.Group("/tasks", jwt)
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.POST("/quick", api.quickAdd)
	tg.POST("/reorder", api.reorder)

	dg := tg.Group("/:id", objectMiddleware(func(ctx context.Context, userID, id string) (interface{}, error) {
		return svc.GetByID(ctx, userID, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)

	// registered after the detail group, whose middleware claims every method on "/:id"
	tg.DELETE("/:id", api.destroy)
	tg.POST("/:id/toggle", api.toggle)
}

func (api *taskApi) query(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var filter task.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []task.Task{})
	}
	filter.Clean()

	tasks, err := api.svc.Query(ctx.Request().Context(), userID, filter)
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) create(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) quickAdd(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data QuickAddRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuickAddRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.QuickAdd(ctx.Request().Context(), userID, data.Title)
	if err != nil {
		return errors.Wrap(err, "adding task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	t, err := contextObject[task.Task](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) update(ctx echo.Context) error {
	t, err := contextObject[task.Task](ctx)
	if err != nil {
		return err
	}
	var data task.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err := data.Validate(t, api.validate); err != nil {
		return err
	}

	t, err = api.svc.Update(ctx.Request().Context(), t, data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) toggle(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	t, next, err := api.svc.Toggle(ctx.Request().Context(), userID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "toggling task")
	}
	return ctx.JSON(http.StatusOK, ToggleResponse{Task: t, Next: next})
}

func (api *taskApi) reorder(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data ordering.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ordering.Request")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	tasks, err := api.svc.Reorder(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "reordering tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	QuickAddRequest struct {
		Title string `json:"title" validate:"required,max=255"`
	}

	ToggleResponse struct {
		Task task.Task  `json:"task"`
		Next *task.Task `json:"next_occurrence"`
	}
)

func (qr *QuickAddRequest) Validate(validate *validator.Validate) error {
	qr.Title = core.CleanString(qr.Title)
	return validate.Struct(qr)
}
