package collection

import (
	"time"

	"github.com/swachhapp/swachh/core"
)

// Assignment statuses. Collected is terminal; no flow reverses it.
const (
	StatusPending   = "Pending"
	StatusCollected = "Collected"
)

// Assignment is a home on a collector's round.
type Assignment struct {
	ID             string    `json:"id" db:"id"`
	ResidentName   string    `json:"residentName" db:"resident_name"`
	Phone          string    `json:"phone" db:"phone"`
	Address        string    `json:"address" db:"address"`
	HouseNumber    string    `json:"houseNumber" db:"house_number"`
	Status         string    `json:"status" db:"status"`
	CollectorPhone string    `json:"collectorPhone,omitempty" db:"collector_phone"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (a *Assignment) IsCollected() bool { return a.Status == StatusCollected }

// NewAssignment contains information needed to put a home on a round.
type NewAssignment struct {
	ResidentName   string `json:"residentName" validate:"required"`
	Phone          string `json:"phone" validate:"required,phone"`
	Address        string `json:"address" validate:"required"`
	HouseNumber    string `json:"houseNumber" validate:"required"`
	CollectorPhone string `json:"collectorPhone" validate:"omitempty,phone"`
}

func (na *NewAssignment) Validate() error {
	na.ResidentName = core.CleanString(na.ResidentName)
	na.Phone = core.CleanString(na.Phone)
	na.Address = core.CleanString(na.Address)
	na.HouseNumber = core.CleanString(na.HouseNumber)
	na.CollectorPhone = core.CleanString(na.CollectorPhone)
	return core.Validate.Struct(na)
}
