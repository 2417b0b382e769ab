package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/notification"
)

type notificationApi struct {
	svc *notification.Service
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notification.Service) {
	api := notificationApi{svc: svc}

	g.GET("/notifications/:phone", api.query, jwt)
}

// Handlers

func (api *notificationApi) query(ctx echo.Context) error {
	ntfs, err := api.svc.Query(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	return ctx.JSON(http.StatusOK, ntfs)
}
