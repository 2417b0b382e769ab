package sync

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/swachhapp/swachh/client/rest"
	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/payment"
	"github.com/swachhapp/swachh/core/report"
)

// ResidentView is what the resident's home screen renders.
type ResidentView struct {
	Payment       payment.Payment
	HasPayment    bool
	Notifications []notification.Notification
}

// BillingStatus is the badge shown next to the current bill.
func (v ResidentView) BillingStatus() string {
	if !v.HasPayment {
		return "No dues"
	}
	if v.Payment.IsPaid() {
		return "✅ Paid"
	}
	return "⏳ Pending"
}

type ResidentDashboard struct {
	api      *rest.Client
	identity Identity

	status Status
	err    error
	view   ResidentView
}

func NewResidentDashboard(api *rest.Client, identity Identity) *ResidentDashboard {
	return &ResidentDashboard{api: api, identity: identity, status: Uninitialized}
}

func (d *ResidentDashboard) Status() Status     { return d.status }
func (d *ResidentDashboard) Err() error         { return d.err }
func (d *ResidentDashboard) View() ResidentView { return d.view }

// Load fetches the current bill and the resident's notifications
// concurrently. No bill on record is an empty state, not a failure.
func (d *ResidentDashboard) Load(ctx context.Context) error {
	d.status = Loading
	d.err = nil

	var (
		pmt    payment.Payment
		hasPmt bool
		ntfs   []notification.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := d.api.CurrentPayment(gctx, d.identity.Phone)
		if err != nil {
			if rest.IsNotFound(err) {
				return nil
			}
			return err
		}
		pmt, hasPmt = p, true
		return nil
	})
	g.Go(func() (err error) {
		ntfs, err = d.api.Notifications(gctx, d.identity.Phone)
		return err
	})
	if err := g.Wait(); err != nil {
		d.view = ResidentView{}
		d.status = LoadError
		d.err = ErrLoadFailed
		return ErrLoadFailed
	}

	if ntfs == nil {
		ntfs = []notification.Notification{}
	}
	d.view = ResidentView{Payment: pmt, HasPayment: hasPmt, Notifications: ntfs}
	d.status = Ready
	return nil
}

func (d *ResidentDashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// MakePayment records a paid bill for the resident, then re-fetches the
// current bill so the view reflects what the server settled on.
func (d *ResidentDashboard) MakePayment(ctx context.Context, amount float64, month string, dueDate time.Time) error {
	if amount <= 0 || core.CleanString(month) == "" {
		return core.NewValidationError(errors.New("please fill all payment details"))
	}

	np := payment.NewPayment{
		PhoneNumber: d.identity.Phone,
		Amount:      amount,
		Month:       month,
		DueDate:     dueDate,
		Status:      payment.StatusPaid,
	}
	if _, err := d.api.CreatePayment(ctx, np); err != nil {
		return errors.Wrap(err, "failed to make payment")
	}

	pmt, err := d.api.CurrentPayment(ctx, d.identity.Phone)
	if err != nil {
		return errors.Wrap(err, "failed to refresh payment")
	}
	d.view.Payment = pmt
	d.view.HasPayment = true
	return nil
}

// SubmitFeedback sends the message and leaves the view untouched.
func (d *ResidentDashboard) SubmitFeedback(ctx context.Context, message, typ string) error {
	if core.CleanString(message) == "" {
		return core.NewValidationError(errors.New("please enter a message"))
	}

	nf := feedback.NewFeedback{Phone: d.identity.Phone, Message: message, Type: typ}
	if _, err := d.api.SubmitFeedback(ctx, nf); err != nil {
		return errors.Wrap(err, "failed to submit feedback")
	}
	return nil
}

// ReportIssue files a missed-pickup or extra-garbage report.
func (d *ResidentDashboard) ReportIssue(ctx context.Context, typ, message string) error {
	if core.CleanString(message) == "" {
		return core.NewValidationError(errors.New("please describe the issue"))
	}

	nr := report.NewReport{
		Type:     typ,
		UserName: d.identity.Name,
		Phone:    d.identity.Phone,
		Address:  d.identity.Area,
		Message:  message,
	}
	if _, err := d.api.CreateReport(ctx, nr); err != nil {
		return errors.Wrap(err, "failed to submit report")
	}
	return nil
}
