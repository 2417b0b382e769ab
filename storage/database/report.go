package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/report"
)

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo reportRepository) CreateReport(ctx context.Context, rpt report.Report) (report.Report, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO reports (id, type, user_name, phone, address, message, status,
		                     assigned_to, created_at, updated_at)
		VALUES (:id, :type, :user_name, :phone, :address, :message, :status,
		        :assigned_to, :created_at, :updated_at)`, rpt)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "inserting report")
	}
	return rpt, nil
}

func (repo reportRepository) GetReportByID(ctx context.Context, id string) (report.Report, error) {
	var rpt report.Report
	err := repo.db.GetContext(ctx, &rpt, `SELECT * FROM reports WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return report.Report{}, report.ErrNotFound
	}
	return rpt, errors.Wrap(err, "getting report by id")
}

func (repo reportRepository) QueryAllReports(ctx context.Context) ([]report.Report, error) {
	rpts := make([]report.Report, 0)
	err := repo.db.SelectContext(ctx, &rpts, `SELECT * FROM reports ORDER BY created_at DESC`)
	return rpts, errors.Wrap(err, "querying reports")
}

func (repo reportRepository) QueryReportsByPhone(ctx context.Context, phone string) ([]report.Report, error) {
	rpts := make([]report.Report, 0)
	err := repo.db.SelectContext(ctx, &rpts,
		`SELECT * FROM reports WHERE phone = $1 ORDER BY created_at DESC`, phone)
	return rpts, errors.Wrap(err, "querying reports by phone")
}

func (repo reportRepository) UpdateReport(ctx context.Context, rpt report.Report) (report.Report, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE reports
		SET status = :status, assigned_to = :assigned_to, updated_at = :updated_at
		WHERE id = :id`, rpt)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "updating report")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return report.Report{}, report.ErrNotFound
	}
	return rpt, nil
}
