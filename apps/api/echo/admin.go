package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

type adminApi struct {
	userSvc  *user.Service
	collSvc  *collection.Service
	rptSvc   *report.Service
	notifSvc *notification.Service
}

func registerAdminAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	userSvc *user.Service,
	collSvc *collection.Service,
	rptSvc *report.Service,
	notifSvc *notification.Service,
) {
	api := adminApi{userSvc: userSvc, collSvc: collSvc, rptSvc: rptSvc, notifSvc: notifSvc}
	admin := roleMiddleware(user.RoleAdmin)

	cg := g.Group("/collectors", jwt, admin)
	cg.POST("/add", api.addCollector)
	cg.GET("/:adminPhone", api.queryCollectors)

	ag := g.Group("/admin", jwt, admin)
	ag.GET("/collectors", api.queryAllCollectors)
	ag.GET("/houses/:adminPhone", api.queryHouses)
	ag.POST("/add-house", api.addHouse)
	ag.GET("/reports", api.queryReports)
	ag.PUT("/reports/:id", api.updateReport)

	g.POST("/notifications", api.sendNotification, jwt, admin)
}

// Handlers

func (api *adminApi) addCollector(ctx echo.Context) error {
	var data user.NewCollector
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCollector")
	}
	if err := data.Validate(api.userSvc); err != nil {
		return err
	}

	usr, err := api.userSvc.CreateCollector(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating collector")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) queryCollectors(ctx echo.Context) error {
	collectors, err := api.userSvc.Collectors(ctx.Request().Context(), ctx.Param("adminPhone"))
	if err != nil {
		return errors.Wrap(err, "querying collectors")
	}
	return ctx.JSON(http.StatusOK, collectors)
}

func (api *adminApi) queryAllCollectors(ctx echo.Context) error {
	collectors, err := api.userSvc.Filter(ctx.Request().Context(), user.QueryFilter{Role: user.RoleCollector})
	if err != nil {
		return errors.Wrap(err, "querying collectors")
	}
	return ctx.JSON(http.StatusOK, collectors)
}

type housesResponse struct {
	Users []user.User `json:"users"`
}

func (api *adminApi) queryHouses(ctx echo.Context) error {
	houses, err := api.userSvc.Houses(ctx.Request().Context(), ctx.Param("adminPhone"))
	if err != nil {
		return errors.Wrap(err, "querying houses")
	}
	return ctx.JSON(http.StatusOK, housesResponse{Users: houses})
}

// addHouse registers the resident account and puts the home on a round.
func (api *adminApi) addHouse(ctx echo.Context) error {
	var data user.NewHouse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHouse")
	}
	if err := data.Validate(api.userSvc); err != nil {
		return err
	}

	// validate the assignment before creating anything so a rejected
	// round never leaves a resident account behind
	na := collection.NewAssignment{
		ResidentName:   data.Name,
		Phone:          data.Phone,
		Address:        data.Area + " " + data.HouseNumber,
		HouseNumber:    data.HouseNumber,
		CollectorPhone: data.CollectorPhone,
	}
	if err := na.Validate(); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	usr, err := api.userSvc.CreateHouse(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating house")
	}

	if _, err := api.collSvc.Create(reqCtx, na); err != nil {
		// a house without a round is unreachable; undo the account so
		// the phone number stays free for a retry
		if delErr := api.userSvc.Delete(reqCtx, usr.ID); delErr != nil {
			return errors.Wrapf(err, "creating assignment (undoing house user also failed: %v)", delErr)
		}
		return errors.Wrap(err, "creating assignment")
	}

	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) queryReports(ctx echo.Context) error {
	reports, err := api.rptSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}
	return ctx.JSON(http.StatusOK, reports)
}

func (api *adminApi) updateReport(ctx echo.Context) error {
	var data report.AssignReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignReport")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rpt, err := api.rptSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		switch errors.Cause(err) {
		case report.ErrNotFound:
			return errHttpNotFound
		case report.ErrInvalidTransition:
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return errors.Wrap(err, "updating report")
	}
	return ctx.JSON(http.StatusOK, rpt)
}

func (api *adminApi) sendNotification(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ntf, err := api.notifSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, ntf)
}
