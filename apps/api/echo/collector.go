package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/user"
)

type collectorApi struct {
	svc *collection.Service
}

func registerCollectorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *collection.Service) {
	api := collectorApi{svc: svc}

	cg := g.Group("/collector", jwt, roleMiddleware(user.RoleCollector, user.RoleAdmin))
	cg.GET("/homes/:phone", api.queryHomes)
	cg.PUT("/collect/:homeId", api.markCollected)
}

// Handlers

func (api *collectorApi) queryHomes(ctx echo.Context) error {
	homes, err := api.svc.AssignedHomes(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		return errors.Wrap(err, "querying assigned homes")
	}
	return ctx.JSON(http.StatusOK, homes)
}

func (api *collectorApi) markCollected(ctx echo.Context) error {
	asg, err := api.svc.MarkCollected(ctx.Request().Context(), ctx.Param("homeId"))
	if err != nil {
		if errors.Cause(err) == collection.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking home collected")
	}
	return ctx.JSON(http.StatusOK, asg)
}
