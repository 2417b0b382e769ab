package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/payment"
)

type paymentApi struct {
	svc *payment.Service
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *payment.Service) {
	api := paymentApi{svc: svc}

	pg := g.Group("/payments", jwt)
	pg.GET("/current/:phone", api.current)
	pg.GET("/history/:phone", api.history)
	pg.POST("", api.create)
}

// Handlers

func (api *paymentApi) current(ctx echo.Context) error {
	pmt, err := api.svc.Current(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		if errors.Cause(err) == payment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting current payment")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *paymentApi) history(ctx echo.Context) error {
	pmts, err := api.svc.History(ctx.Request().Context(), ctx.Param("phone"))
	if err != nil {
		return errors.Wrap(err, "querying payment history")
	}
	return ctx.JSON(http.StatusOK, pmts)
}

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	pmt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}
