package inmem

import (
	"context"
	"sort"

	"github.com/swachhapp/swachh/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (r *feedbackRepository) CreateFeedback(_ context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[fb.ID] = &fb
	return fb, nil
}

func (r *feedbackRepository) QueryFeedbackByPhone(_ context.Context, phone string) ([]feedback.Feedback, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]feedback.Feedback, 0)
	for _, fb := range r.db.t {
		if fb.Phone == phone {
			res = append(res, *fb)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}
