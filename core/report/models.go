package report

import (
	"time"

	"github.com/swachhapp/swachh/core"
)

// Report types
const (
	TypeMissed   = "missed"
	TypeExtra    = "extra"
	TypeFeedback = "feedback"
)

// Report statuses; transitions are monotonic: Pending -> Assigned -> Resolved.
const (
	StatusPending  = "Pending"
	StatusAssigned = "Assigned"
	StatusResolved = "Resolved"
)

type Report struct {
	ID         string    `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	UserName   string    `json:"userName" db:"user_name"`
	Phone      string    `json:"phone" db:"phone"`
	Address    string    `json:"address" db:"address"`
	Message    string    `json:"message" db:"message"`
	Status     string    `json:"status" db:"status"`
	AssignedTo string    `json:"assignedTo,omitempty" db:"assigned_to"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewReport contains information needed to file a resident report.
type NewReport struct {
	Type     string `json:"type" validate:"required,oneof=missed extra feedback"`
	UserName string `json:"userName" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

func (nr *NewReport) Validate() error {
	nr.UserName = core.CleanString(nr.UserName)
	nr.Phone = core.CleanString(nr.Phone)
	nr.Address = core.CleanString(nr.Address)
	nr.Message = core.CleanString(nr.Message)
	return core.Validate.Struct(nr)
}

// AssignReport is the admin action of routing a report to a collector.
type AssignReport struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=Assigned Resolved"`
}

func (ar *AssignReport) Validate() error {
	ar.AssignedTo = core.CleanString(ar.AssignedTo)
	return core.Validate.Struct(ar)
}
