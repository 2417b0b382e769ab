package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/notification"
)

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo notificationRepository) CreateNotification(ctx context.Context, ntf notification.Notification) (notification.Notification, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO notifications (id, phone, title, message, type, created_at)
		VALUES (:id, :phone, :title, :message, :type, :created_at)`, ntf)
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "inserting notification")
	}
	return ntf, nil
}

func (repo notificationRepository) QueryNotificationsByPhone(ctx context.Context, phone string) ([]notification.Notification, error) {
	ntfs := make([]notification.Notification, 0)
	err := repo.db.SelectContext(ctx, &ntfs,
		`SELECT * FROM notifications WHERE phone = $1 OR phone = '' ORDER BY created_at DESC`, phone)
	return ntfs, errors.Wrap(err, "querying notifications by phone")
}
