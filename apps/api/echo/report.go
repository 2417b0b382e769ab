package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt)
	rg.POST("", api.create)
	rg.GET("/:phone", api.queryByPhone)
}

// Handlers

func (api *reportApi) create(ctx echo.Context) error {
	var data report.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rpt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating report")
	}
	return ctx.JSON(http.StatusCreated, rpt)
}

func (api *reportApi) queryByPhone(ctx echo.Context) error {
	reports, err := api.svc.QueryByPhone(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		return errors.Wrap(err, "querying reports by phone")
	}
	return ctx.JSON(http.StatusOK, reports)
}
