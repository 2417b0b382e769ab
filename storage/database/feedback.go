package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *sqlx.DB) *feedbackRepository {
	return &feedbackRepository{db: db}
}

func (repo feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO feedback (id, phone, message, type, created_at)
		VALUES (:id, :phone, :message, :type, :created_at)`, fb)
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return fb, nil
}

func (repo feedbackRepository) QueryFeedbackByPhone(ctx context.Context, phone string) ([]feedback.Feedback, error) {
	fbs := make([]feedback.Feedback, 0)
	err := repo.db.SelectContext(ctx, &fbs,
		`SELECT * FROM feedback WHERE phone = $1 ORDER BY created_at DESC`, phone)
	return fbs, errors.Wrap(err, "querying feedback by phone")
}
