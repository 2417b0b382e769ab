package feedback

import (
	"time"

	"github.com/swachhapp/swachh/core"
)

// Feedback types
const (
	TypeFeedback   = "Feedback"
	TypeComplaint  = "Complaint"
	TypeSuggestion = "Suggestion"
)

type Feedback struct {
	ID        string    `json:"id" db:"id"`
	Phone     string    `json:"phone" db:"phone"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewFeedback contains information needed to submit feedback.
type NewFeedback struct {
	Phone   string `json:"phone" validate:"required,phone"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=Feedback Complaint Suggestion"`
}

func (nf *NewFeedback) Validate() error {
	nf.Phone = core.CleanString(nf.Phone)
	nf.Message = core.CleanString(nf.Message)
	nf.Type = core.CleanString(nf.Type)
	return core.Validate.Struct(nf)
}

// FAQ is a static help topic.
type FAQ struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Question is a help query submitted by a user.
type Question struct {
	UserID  string `json:"userId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (q *Question) Validate() error {
	q.UserID = core.CleanString(q.UserID)
	q.Message = core.CleanString(q.Message)
	return core.Validate.Struct(q)
}
