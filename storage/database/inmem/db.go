// Package inmem implements the repositories on mutex-guarded in-memory maps.
// It backs the test suites and local development without a database.
package inmem

import (
	"sync"

	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/payment"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

type (
	DB struct {
		user         *userTable
		assignment   *assignmentTable
		report       *reportTable
		payment      *paymentTable
		notification *notificationTable
		feedback     *feedbackTable
	}

	userTable struct {
		t     map[string]*user.User
		mutex sync.RWMutex
	}
	assignmentTable struct {
		t     map[string]*collection.Assignment
		mutex sync.RWMutex
	}
	reportTable struct {
		t     map[string]*report.Report
		mutex sync.RWMutex
	}
	paymentTable struct {
		payments map[string]*payment.Payment
		invoices map[string]*payment.Invoice
		mutex    sync.RWMutex
	}
	notificationTable struct {
		t     map[string]*notification.Notification
		mutex sync.RWMutex
	}
	feedbackTable struct {
		t     map[string]*feedback.Feedback
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         &userTable{t: make(map[string]*user.User)},
		assignment:   &assignmentTable{t: make(map[string]*collection.Assignment)},
		report:       &reportTable{t: make(map[string]*report.Report)},
		payment:      &paymentTable{payments: make(map[string]*payment.Payment), invoices: make(map[string]*payment.Invoice)},
		notification: &notificationTable{t: make(map[string]*notification.Notification)},
		feedback:     &feedbackTable{t: make(map[string]*feedback.Feedback)},
	}
	return db, nil
}
