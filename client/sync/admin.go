package sync

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/swachhapp/swachh/client/rest"
	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

// defaultCollectorPassword is issued when the admin leaves the password
// blank; the collector is expected to change it on first login.
const defaultCollectorPassword = "123456"

// AdminView is what the admin's overview screen renders.
type AdminView struct {
	Collectors []user.User
	Houses     []user.User
	Reports    []report.Report
}

// PendingReports counts reports still awaiting assignment.
func (v AdminView) PendingReports() int {
	n := 0
	for _, r := range v.Reports {
		if r.Status == report.StatusPending {
			n++
		}
	}
	return n
}

type AdminDashboard struct {
	api      *rest.Client
	identity Identity

	status Status
	err    error
	view   AdminView
}

func NewAdminDashboard(api *rest.Client, identity Identity) *AdminDashboard {
	return &AdminDashboard{api: api, identity: identity, status: Uninitialized}
}

func (d *AdminDashboard) Status() Status  { return d.status }
func (d *AdminDashboard) Err() error      { return d.err }
func (d *AdminDashboard) View() AdminView { return d.view }

// Load fetches the admin's collectors, houses and reports concurrently.
// Any fetch failing discards all three results.
func (d *AdminDashboard) Load(ctx context.Context) error {
	d.status = Loading
	d.err = nil

	var (
		collectors []user.User
		houses     []user.User
		reports    []report.Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		collectors, err = d.api.Collectors(gctx, d.identity.Phone)
		return err
	})
	g.Go(func() (err error) {
		houses, err = d.api.Houses(gctx, d.identity.Phone)
		return err
	})
	g.Go(func() (err error) {
		reports, err = d.api.Reports(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.view = AdminView{}
		d.status = LoadError
		d.err = ErrLoadFailed
		return ErrLoadFailed
	}

	if collectors == nil {
		collectors = []user.User{}
	}
	if houses == nil {
		houses = []user.User{}
	}
	if reports == nil {
		reports = []report.Report{}
	}
	d.view = AdminView{Collectors: collectors, Houses: houses, Reports: reports}
	d.status = Ready
	return nil
}

func (d *AdminDashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// AddCollector creates a collector account under this admin, then reloads the
// whole view so server-derived fields come back authoritative.
func (d *AdminDashboard) AddCollector(ctx context.Context, name, phone, password string) error {
	if core.CleanString(name) == "" || core.CleanString(phone) == "" {
		return core.NewValidationError(errors.New("please fill all collector details"))
	}
	if password == "" {
		password = defaultCollectorPassword
	}

	nc := user.NewCollector{
		Name:       name,
		Phone:      phone,
		Password:   password,
		AdminPhone: d.identity.Phone,
	}
	if _, err := d.api.AddCollector(ctx, nc); err != nil {
		return errors.Wrap(err, "failed to add collector")
	}
	return d.Refresh(ctx)
}

// AddHouse registers a resident household and puts it on a collection round,
// then reloads the whole view.
func (d *AdminDashboard) AddHouse(ctx context.Context, nh user.NewHouse) error {
	if core.CleanString(nh.Name) == "" || core.CleanString(nh.Phone) == "" ||
		core.CleanString(nh.Area) == "" || core.CleanString(nh.HouseNumber) == "" {
		return core.NewValidationError(errors.New("please fill all house details"))
	}
	if nh.Password == "" {
		nh.Password = defaultCollectorPassword
	}
	nh.AdminPhone = d.identity.Phone

	if _, err := d.api.AddHouse(ctx, nh); err != nil {
		return errors.Wrap(err, "failed to add house")
	}
	return d.Refresh(ctx)
}

// AssignCollector routes a report to a collector. On success only the one
// report is patched locally with the values just written.
func (d *AdminDashboard) AssignCollector(ctx context.Context, reportID, collectorID string) error {
	idx := -1
	for i, r := range d.view.Reports {
		if r.ID == reportID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Errorf("report %q not found", reportID)
	}

	ar := report.AssignReport{AssignedTo: collectorID, Status: report.StatusAssigned}
	if _, err := d.api.UpdateReport(ctx, reportID, ar); err != nil {
		return errors.Wrap(err, "failed to assign collector")
	}

	d.view.Reports[idx].AssignedTo = collectorID
	d.view.Reports[idx].Status = report.StatusAssigned
	return nil
}

// SendNotification broadcasts an announcement. The admin view holds no
// notifications, so nothing is patched.
func (d *AdminDashboard) SendNotification(ctx context.Context, title, message string) error {
	if core.CleanString(title) == "" || core.CleanString(message) == "" {
		return core.NewValidationError(errors.New("please fill the notification details"))
	}

	nn := notification.NewNotification{Title: title, Message: message}
	if _, err := d.api.SendNotification(ctx, nn); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}
	return nil
}
