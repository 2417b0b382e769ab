package inmem

import (
	"context"
	"sort"

	"github.com/swachhapp/swachh/core/payment"
)

type paymentRepository struct {
	db *paymentTable
}

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db.payment}
}

func (r *paymentRepository) query() []payment.Payment {
	res := make([]payment.Payment, 0, len(r.db.payments))
	for _, p := range r.db.payments {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DueDate.Equal(res[j].DueDate) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].DueDate.After(res[j].DueDate)
	})
	return res
}

func (r *paymentRepository) CreatePayment(_ context.Context, pmt payment.Payment) (payment.Payment, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.payments[pmt.ID] = &pmt
	return pmt, nil
}

func (r *paymentRepository) CurrentPayment(_ context.Context, phone string) (payment.Payment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, pmt := range r.query() {
		if pmt.PhoneNumber == phone {
			return pmt, nil
		}
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (r *paymentRepository) QueryPaymentsByPhone(_ context.Context, phone string) ([]payment.Payment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]payment.Payment, 0)
	for _, pmt := range r.query() {
		if pmt.PhoneNumber == phone {
			res = append(res, pmt)
		}
	}
	return res, nil
}

func (r *paymentRepository) CreateInvoice(_ context.Context, inv payment.Invoice) (payment.Invoice, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.invoices[inv.ID] = &inv
	return inv, nil
}
