package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/user"
)

type feedbackApi struct {
	svc *feedback.Service
}

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *feedback.Service) {
	api := feedbackApi{svc: svc}

	g.POST("/feedback", api.create)
	g.GET("/feedback/:phone", api.queryByPhone, jwt, roleMiddleware(user.RoleAdmin))
}

// Handlers

func (api *feedbackApi) create(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	fb, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating feedback")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (api *feedbackApi) queryByPhone(ctx echo.Context) error {
	fbs, err := api.svc.QueryByPhone(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	return ctx.JSON(http.StatusOK, fbs)
}
