package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/ordering"
	"github.com/NicoleRU22/Studynest/core/project"
)

type projectApi struct {
	svc      *project.Service
	validate *validator.Validate
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *project.Service, validate *validator.Validate) {
	api := projectApi{svc: svc, validate: validate}

	pg := g.Group("/projects", jwt)
	pg.GET("", api.query)
	pg.GET("/board", api.board)
	pg.POST("", api.create)

	// detail endpoints
	dg := pg.Group("/:id", objectMiddleware(func(ctx context.Context, userID, id string) (interface{}, error) {
		return svc.GetByID(ctx, userID, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.PUT("/status", api.move)

	dg.POST("/checklist", api.addChecklistItem)
	dg.POST("/checklist/reorder", api.reorderChecklist)
	dg.POST("/checklist/:item/toggle", api.toggleChecklistItem)
	dg.DELETE("/checklist/:item", api.deleteChecklistItem)

	dg.POST("/milestones", api.addMilestone)
	dg.POST("/milestones/reorder", api.reorderMilestones)
	dg.DELETE("/milestones/:item", api.deleteMilestone)

	// registered after the detail group, whose middleware claims every method on "/:id"
	pg.DELETE("/:id", api.destroy)
}

func (api *projectApi) query(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var filter project.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []project.Project{})
	}

	projects, err := api.svc.Query(ctx.Request().Context(), userID, filter)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	return ctx.JSON(http.StatusOK, projects)
}

func (api *projectApi) board(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	board, err := api.svc.QueryBoard(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying board")
	}
	return ctx.JSON(http.StatusOK, board)
}

func (api *projectApi) create(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.GetDetail(ctx.Request().Context(), p)
	if err != nil {
		return errors.Wrap(err, "getting project detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *projectApi) update(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	var data project.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	if err := data.Validate(p, api.validate); err != nil {
		return err
	}

	p, err = api.svc.Update(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "updating project")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *projectApi) move(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	var data project.MoveProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MoveProject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err = api.svc.Move(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "moving project")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *projectApi) destroy(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Checklist

func (api *projectApi) addChecklistItem(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	var data project.NewChecklistItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChecklistItem")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	detail, err := api.svc.AddChecklistItem(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "adding checklist item")
	}
	return ctx.JSON(http.StatusCreated, detail)
}

func (api *projectApi) toggleChecklistItem(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.ToggleChecklistItem(ctx.Request().Context(), p, ctx.Param("item"))
	if err != nil {
		return errors.Wrap(err, "toggling checklist item")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *projectApi) deleteChecklistItem(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.DeleteChecklistItem(ctx.Request().Context(), p, ctx.Param("item"))
	if err != nil {
		return errors.Wrap(err, "deleting checklist item")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *projectApi) reorderChecklist(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	data, err := api.bindReorder(ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.ReorderChecklist(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "reordering checklist")
	}
	return ctx.JSON(http.StatusOK, detail)
}

// Milestones

func (api *projectApi) addMilestone(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	var data project.NewMilestone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMilestone")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	detail, err := api.svc.AddMilestone(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "adding milestone")
	}
	return ctx.JSON(http.StatusCreated, detail)
}

func (api *projectApi) deleteMilestone(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.DeleteMilestone(ctx.Request().Context(), p, ctx.Param("item"))
	if err != nil {
		return errors.Wrap(err, "deleting milestone")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *projectApi) reorderMilestones(ctx echo.Context) error {
	p, err := contextObject[project.Project](ctx)
	if err != nil {
		return err
	}
	data, err := api.bindReorder(ctx)
	if err != nil {
		return err
	}
	detail, err := api.svc.ReorderMilestones(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "reordering milestones")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *projectApi) bindReorder(ctx echo.Context) (ordering.Request, error) {
	var data ordering.Request
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrap(err, "binding to ordering.Request")
	}
	if err := api.validate.Struct(data); err != nil {
		return data, err
	}
	return data, nil
}
