package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("payment not found")
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, pmt Payment) (Payment, error)
		// CurrentPayment returns the payment with the latest due date for the phone.
		CurrentPayment(ctx context.Context, phone string) (Payment, error)
		QueryPaymentsByPhone(ctx context.Context, phone string) ([]Payment, error)
		CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a payment. A paid payment also gets an invoice written.
func (svc *Service) Create(ctx context.Context, np NewPayment) (Payment, error) {
	status := np.Status
	if status == "" {
		status = StatusPending
	}
	pmt, err := svc.repo.CreatePayment(ctx, Payment{
		ID:          uuid.New().String(),
		PhoneNumber: np.PhoneNumber,
		Amount:      np.Amount,
		Month:       np.Month,
		DueDate:     np.DueDate,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Payment{}, err
	}
	if pmt.IsPaid() {
		if _, err := svc.repo.CreateInvoice(ctx, Invoice{
			ID:         uuid.New().String(),
			PaymentID:  pmt.ID,
			InvoiceURL: fmt.Sprintf("/invoices/%s.pdf", pmt.ID),
		}); err != nil {
			return Payment{}, errors.Wrap(err, "creating invoice")
		}
	}
	return pmt, nil
}

// Current returns the resident's current payment: the one with the latest due date.
func (svc *Service) Current(ctx context.Context, phone string) (Payment, error) {
	return svc.repo.CurrentPayment(ctx, phone)
}

// History returns all payments for a resident, newest first.
func (svc *Service) History(ctx context.Context, phone string) ([]Payment, error) {
	return svc.repo.QueryPaymentsByPhone(ctx, phone)
}
