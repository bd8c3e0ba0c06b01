package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/note"
)

type noteApi struct {
	svc      *note.Service
	validate *validator.Validate
}

func registerNoteAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *note.Service, validate *validator.Validate) {
	api := noteApi{svc: svc, validate: validate}

	ng := g.Group("/notes", jwt)
	ng.GET("", api.query)
	ng.POST("", api.create)

	dg := ng.Group("/:id", objectMiddleware(func(ctx context.Context, userID, id string) (interface{}, error) {
		return svc.GetByID(ctx, userID, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.POST("/favorite", api.toggleFavorite)

	// registered after the detail group, whose middleware claims every method on "/:id"
	ng.DELETE("/:id", api.destroy)
}

func (api *noteApi) query(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	favorite, err := queryBool(ctx, "favorite")
	if err != nil {
		return err
	}
	filter := note.QueryFilter{
		Search:    ctx.QueryParam("search"),
		SubjectID: ctx.QueryParam("subject"),
		Favorite:  favorite,
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	notes, err := api.svc.Query(ctx.Request().Context(), userID, filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) update(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	var data note.UpdateNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNote")
	}
	if err := data.Validate(n, api.validate); err != nil {
		return err
	}

	n, err = api.svc.Update(ctx.Request().Context(), n, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) toggleFavorite(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	n, err = api.svc.ToggleFavorite(ctx.Request().Context(), n)
	if err != nil {
		return errors.Wrap(err, "toggling favorite")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}
