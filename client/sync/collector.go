package sync

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/swachhapp/swachh/client/rest"
	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/notification"
)

// CollectorView is what the collector's home screen renders.
type CollectorView struct {
	Homes          []collection.Assignment
	Notifications  []notification.Notification
	CollectedCount int
}

// CollectorDashboard loads the collector's assigned homes and keeps the
// collected count in step as homes are marked off.
type CollectorDashboard struct {
	api      *rest.Client
	identity Identity

	status Status
	err    error
	view   CollectorView
}

func NewCollectorDashboard(api *rest.Client, identity Identity) *CollectorDashboard {
	return &CollectorDashboard{api: api, identity: identity, status: Uninitialized}
}

func (d *CollectorDashboard) Status() Status      { return d.status }
func (d *CollectorDashboard) Err() error          { return d.err }
func (d *CollectorDashboard) View() CollectorView { return d.view }

// Load fetches the assigned homes and the collector's notifications
// concurrently. Either fetch failing discards both results.
func (d *CollectorDashboard) Load(ctx context.Context) error {
	d.status = Loading
	d.err = nil

	var (
		homes []collection.Assignment
		ntfs  []notification.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		homes, err = d.api.CollectorHomes(gctx, d.identity.Phone)
		return err
	})
	g.Go(func() (err error) {
		ntfs, err = d.api.Notifications(gctx, d.identity.Phone)
		return err
	})
	if err := g.Wait(); err != nil {
		d.view = CollectorView{}
		d.status = LoadError
		d.err = ErrLoadFailed
		return ErrLoadFailed
	}

	if homes == nil {
		homes = []collection.Assignment{}
	}
	if ntfs == nil {
		ntfs = []notification.Notification{}
	}
	d.view = CollectorView{
		Homes:          homes,
		Notifications:  ntfs,
		CollectedCount: countCollected(homes),
	}
	d.status = Ready
	return nil
}

// Refresh re-runs the full load, replacing the view unconditionally.
func (d *CollectorDashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// MarkCollected records the pickup for a home. The status is terminal; a home
// already marked collected is left alone and no request is made. On success
// only the one home is patched locally and the count recomputed.
func (d *CollectorDashboard) MarkCollected(ctx context.Context, homeID string) error {
	idx := -1
	for i, h := range d.view.Homes {
		if h.ID == homeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Errorf("home %q is not on this round", homeID)
	}
	if d.view.Homes[idx].IsCollected() {
		return nil
	}

	if _, err := d.api.MarkCollected(ctx, homeID); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	d.view.Homes[idx].Status = collection.StatusCollected
	d.view.CollectedCount = countCollected(d.view.Homes)
	return nil
}

// CanMarkCollected reports whether the mark-collected control should show for
// a home; collected homes are done for the day.
func (v CollectorView) CanMarkCollected(homeID string) bool {
	for _, h := range v.Homes {
		if h.ID == homeID {
			return !h.IsCollected()
		}
	}
	return false
}

func countCollected(homes []collection.Assignment) int {
	n := 0
	for _, h := range homes {
		if h.IsCollected() {
			n++
		}
	}
	return n
}
