package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/grade"
)

type gradeApi struct {
	svc      *grade.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *grade.Service, validate *validator.Validate) {
	api := gradeApi{svc: svc, validate: validate}

	gg := g.Group("/grades", jwt)
	gg.GET("", api.query)
	gg.GET("/summary", api.summary)
	gg.POST("", api.create)

	dg := gg.Group("/:id", objectMiddleware(func(ctx context.Context, userID, id string) (interface{}, error) {
		return svc.GetByID(ctx, userID, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)

	// registered after the detail group, whose middleware claims every method on "/:id"
	gg.DELETE("/:id", api.destroy)
}

func (api *gradeApi) query(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var filter grade.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []grade.Grade{})
	}
	filter.Clean()

	grades, err := api.svc.Query(ctx.Request().Context(), userID, filter)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) summary(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	summary, err := api.svc.Summary(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "summarizing grades")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *gradeApi) create(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	g, err := contextObject[grade.Grade](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	g, err := contextObject[grade.Grade](ctx)
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(g, api.validate); err != nil {
		return err
	}

	g, err = api.svc.Update(ctx.Request().Context(), g, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
