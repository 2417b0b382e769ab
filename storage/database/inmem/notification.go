package inmem

import (
	"context"
	"sort"

	"github.com/swachhapp/swachh/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (r *notificationRepository) CreateNotification(_ context.Context, ntf notification.Notification) (notification.Notification, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[ntf.ID] = &ntf
	return ntf, nil
}

func (r *notificationRepository) QueryNotificationsByPhone(_ context.Context, phone string) ([]notification.Notification, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]notification.Notification, 0)
	for _, ntf := range r.db.t {
		if ntf.Phone == phone || ntf.Phone == "" {
			res = append(res, *ntf)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}
