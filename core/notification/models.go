package notification

import (
	"time"

	"github.com/swachhapp/swachh/core"
)

type Notification struct {
	ID        string    `json:"id" db:"id"`
	Phone     string    `json:"phone,omitempty" db:"phone"` // empty phone = broadcast
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type,omitempty" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewNotification contains information needed to publish a notification.
// An empty phone broadcasts to all users.
type NewNotification struct {
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type"`
}

func (nn *NewNotification) Validate() error {
	nn.Phone = core.CleanString(nn.Phone)
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
	nn.Type = core.CleanString(nn.Type)
	return core.Validate.Struct(nn)
}
