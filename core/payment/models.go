package payment

import (
	"time"

	"github.com/swachhapp/swachh/core"
)

// Payment statuses. Pending -> Paid; never reversed.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

type Payment struct {
	ID          string    `json:"id" db:"id"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Amount      float64   `json:"amount" db:"amount"`
	Month       string    `json:"month" db:"month"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

func (p Payment) IsPaid() bool { return p.Status == StatusPaid }

// Invoice is the receipt document written alongside a paid Payment.
type Invoice struct {
	ID         string `json:"id" db:"id"`
	PaymentID  string `json:"paymentId" db:"payment_id"`
	InvoiceURL string `json:"invoiceUrl" db:"invoice_url"`
}

// NewPayment contains information needed to record a payment.
type NewPayment struct {
	PhoneNumber string    `json:"phoneNumber" validate:"required,phone"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Month       string    `json:"month" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=Paid Pending"`
}

func (np *NewPayment) Validate() error {
	np.PhoneNumber = core.CleanString(np.PhoneNumber)
	np.Month = core.CleanString(np.Month)
	return core.Validate.Struct(np)
}
