package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/payment"
)

type paymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{db: db}
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment) (payment.Payment, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO payments (id, phone_number, amount, month, due_date, status, created_at)
		VALUES (:id, :phone_number, :amount, :month, :due_date, :status, :created_at)`, pmt)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

func (repo paymentRepository) CurrentPayment(ctx context.Context, phone string) (payment.Payment, error) {
	var pmt payment.Payment
	err := repo.db.GetContext(ctx, &pmt,
		`SELECT * FROM payments WHERE phone_number = $1 ORDER BY due_date DESC, created_at DESC LIMIT 1`, phone)
	if err == sql.ErrNoRows {
		return payment.Payment{}, payment.ErrNotFound
	}
	return pmt, errors.Wrap(err, "getting current payment")
}

func (repo paymentRepository) QueryPaymentsByPhone(ctx context.Context, phone string) ([]payment.Payment, error) {
	pmts := make([]payment.Payment, 0)
	err := repo.db.SelectContext(ctx, &pmts,
		`SELECT * FROM payments WHERE phone_number = $1 ORDER BY due_date DESC`, phone)
	return pmts, errors.Wrap(err, "querying payments by phone")
}

func (repo paymentRepository) CreateInvoice(ctx context.Context, inv payment.Invoice) (payment.Invoice, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO invoices (id, payment_id, invoice_url)
		VALUES (:id, :payment_id, :invoice_url)`, inv)
	if err != nil {
		return payment.Invoice{}, errors.Wrap(err, "inserting invoice")
	}
	return inv, nil
}
