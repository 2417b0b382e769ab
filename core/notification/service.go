package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, ntf Notification) (Notification, error)
		// QueryNotificationsByPhone returns notifications addressed to the phone
		// plus broadcasts, newest first.
		QueryNotificationsByPhone(ctx context.Context, phone string) ([]Notification, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNotification) (Notification, error) {
	return svc.repo.CreateNotification(ctx, Notification{
		ID:        uuid.New().String(),
		Phone:     nn.Phone,
		Title:     nn.Title,
		Message:   nn.Message,
		Type:      nn.Type,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) Query(ctx context.Context, phone string) ([]Notification, error) {
	return svc.repo.QueryNotificationsByPhone(ctx, phone)
}
