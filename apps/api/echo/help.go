package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/feedback"
)

type helpApi struct {
	svc *feedback.Service
}

func registerHelpAPI(g *echo.Group, svc *feedback.Service) {
	api := helpApi{svc: svc}

	hg := g.Group("/help")
	hg.GET("", api.topics)
	hg.POST("", api.askQuestion)
}

type questionAck struct {
	Message string            `json:"message"`
	Data    feedback.Question `json:"data"`
}

// Handlers

func (api *helpApi) topics(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.HelpTopics())
}

func (api *helpApi) askQuestion(ctx echo.Context) error {
	var data feedback.Question
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Question")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, questionAck{
		Message: "Your query has been received. Our support team will respond soon.",
		Data:    data,
	})
}
