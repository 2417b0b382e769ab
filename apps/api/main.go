package main

import (
	"log"
	"os"

	"github.com/swachhapp/swachh/apps/api/echo"
	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/payment"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
	"github.com/swachhapp/swachh/services/email"
	"github.com/swachhapp/swachh/services/logger"
	"github.com/swachhapp/swachh/storage/database"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	// set up logging & email
	var logSvc core.Logger
	var mailSvc core.EmailService
	if core.Conf.Debug {
		logSvc = logsvc.NewStdLogger(std)
		mailSvc = emailsvc.NewConsoleService()
	} else {
		logSvc = logsvc.NewRollbarLogger(std, core.Conf)
		mailSvc = emailsvc.NewSendgridService(logSvc)
	}

	// set up DB
	db, err := database.Open()
	if err != nil {
		std.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	// set up services
	usrSvc := user.NewService(database.NewUserRepository(db), mailSvc)
	collSvc := collection.NewService(database.NewAssignmentRepository(db))
	rptSvc := report.NewService(database.NewReportRepository(db))
	pmtSvc := payment.NewService(database.NewPaymentRepository(db))
	notifSvc := notification.NewService(database.NewNotificationRepository(db))
	fbSvc := feedback.NewService(database.NewFeedbackRepository(db), usrSvc, mailSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:            core.Conf.Server.Addr,
			Logger:          logSvc,
			UserSvc:         usrSvc,
			CollectionSvc:   collSvc,
			ReportSvc:       rptSvc,
			PaymentSvc:      pmtSvc,
			NotificationSvc: notifSvc,
			FeedbackSvc:     fbSvc,
		},
	)
	app.Start()
}
