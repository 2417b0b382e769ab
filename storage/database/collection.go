package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/collection"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ collection.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, asg collection.Assignment) (collection.Assignment, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO assignments (id, resident_name, phone, address, house_number, status,
		                         collector_phone, created_at, updated_at)
		VALUES (:id, :resident_name, :phone, :address, :house_number, :status,
		        :collector_phone, :created_at, :updated_at)`, asg)
	if err != nil {
		return collection.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return asg, nil
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (collection.Assignment, error) {
	var asg collection.Assignment
	err := repo.db.GetContext(ctx, &asg, `SELECT * FROM assignments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return collection.Assignment{}, collection.ErrNotFound
	}
	return asg, errors.Wrap(err, "getting assignment by id")
}

func (repo assignmentRepository) QueryAssignmentsByCollector(ctx context.Context, collectorPhone string) ([]collection.Assignment, error) {
	asgs := make([]collection.Assignment, 0)
	err := repo.db.SelectContext(ctx, &asgs,
		`SELECT * FROM assignments WHERE collector_phone = $1 ORDER BY created_at`, collectorPhone)
	return asgs, errors.Wrap(err, "querying assignments by collector")
}

func (repo assignmentRepository) QueryAssignmentsByResident(ctx context.Context, phone string) ([]collection.Assignment, error) {
	asgs := make([]collection.Assignment, 0)
	err := repo.db.SelectContext(ctx, &asgs,
		`SELECT * FROM assignments WHERE phone = $1 ORDER BY created_at`, phone)
	return asgs, errors.Wrap(err, "querying assignments by resident")
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, asg collection.Assignment) (collection.Assignment, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE assignments
		SET status = :status, collector_phone = :collector_phone, updated_at = :updated_at
		WHERE id = :id`, asg)
	if err != nil {
		return collection.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return collection.Assignment{}, collection.ErrNotFound
	}
	return asg, nil
}
