package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/payment"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Logger          core.Logger
		UserSvc         *user.Service
		CollectionSvc   *collection.Service
		ReportSvc       *report.Service
		PaymentSvc      *payment.Service
		NotificationSvc *notification.Service
		FeedbackSvc     *feedback.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.CORS())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(api, jwt, s.opts.UserSvc)
	registerAdminAPI(api, jwt, s.opts.UserSvc, s.opts.CollectionSvc, s.opts.ReportSvc, s.opts.NotificationSvc)
	registerCollectorAPI(api, jwt, s.opts.CollectionSvc)
	registerReportAPI(api, jwt, s.opts.ReportSvc)
	registerPaymentAPI(api, jwt, s.opts.PaymentSvc)
	registerNotificationAPI(api, jwt, s.opts.NotificationSvc)
	registerFeedbackAPI(api, jwt, s.opts.FeedbackSvc)
	registerHelpAPI(api, s.opts.FeedbackSvc)
}

func (s *server) Start() {
	go func() {
		<-s.shutdown
		_ = s.app.Shutdown(context.Background())
	}()
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown is called by the error handler when an unrecoverable error is caught.
func (s *server) signalShutdown() {
	close(s.shutdown)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Swachh API!")
}
