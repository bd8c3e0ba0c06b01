package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/profile"
)

type profileApi struct {
	svc      *profile.Service
	validate *validator.Validate
}

func registerProfileAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *profile.Service, validate *validator.Validate) {
	api := profileApi{svc: svc, validate: validate}

	pg := g.Group("/profile", jwt, api.profileMiddleware)
	pg.GET("", api.retrieve)
	pg.PUT("", api.update)
	pg.POST("/wins", api.addWin)
	pg.DELETE("/wins/:index", api.removeWin)
	pg.PUT("/avatar", api.setAvatar)
	pg.DELETE("/avatar", api.removeAvatar)
}

// profileMiddleware loads the context user's profile.
func (api *profileApi) profileMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		userID, err := contextUserID(ctx)
		if err != nil {
			return err
		}
		p, err := api.svc.Get(ctx.Request().Context(), userID)
		if err != nil {
			return errors.Wrap(err, "getting profile")
		}
		ctx.Set(contextObjectKey, p)
		return next(ctx)
	}
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) update(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	var data profile.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(p, api.validate); err != nil {
		return err
	}

	p, err = api.svc.Update(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) addWin(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	var data profile.NewWin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err = api.svc.AddWin(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "adding small win")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *profileApi) removeWin(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return errHttpNotFound
	}

	p, err = api.svc.RemoveWin(ctx.Request().Context(), p, index)
	if err != nil {
		return errors.Wrap(err, "removing small win")
	}
	return ctx.JSON(http.StatusOK, p)
}

// setAvatar expects a multipart form with the image in the `avatar` field.
func (api *profileApi) setAvatar(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	fh, err := ctx.FormFile("avatar")
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "avatar", Error: "this field is required"})
	}
	data := profile.NewAvatar{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
	}
	if err := data.Validate(); err != nil {
		return err
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening avatar")
	}
	defer f.Close()

	p, err = api.svc.SetAvatar(ctx.Request().Context(), p, data, f)
	if err != nil {
		return errors.Wrap(err, "setting avatar")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) removeAvatar(ctx echo.Context) error {
	p, err := contextObject[profile.Profile](ctx)
	if err != nil {
		return err
	}
	p, err = api.svc.RemoveAvatar(ctx.Request().Context(), p)
	if err != nil {
		return errors.Wrap(err, "removing avatar")
	}
	return ctx.JSON(http.StatusOK, p)
}
