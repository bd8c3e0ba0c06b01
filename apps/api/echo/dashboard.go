package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		userID, err := contextUserID(ctx)
		if err != nil {
			return err
		}
		summary, err := svc.Summary(ctx.Request().Context(), userID)
		if err != nil {
			return errors.Wrap(err, "summarizing dashboard")
		}
		return ctx.JSON(http.StatusOK, summary)
	}, jwt)
}
