package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CheckPhoneUniqueness(ctx context.Context, phone string, excludedUsers ...user.User) error {
	query := `SELECT COUNT(*) FROM users WHERE phone = $1`
	args := []interface{}{phone}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		q, inArgs, err := sqlx.In(`SELECT COUNT(*) FROM users WHERE phone = ? AND id NOT IN (?)`, phone, ids)
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		query = repo.db.Rebind(q)
		args = inArgs
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "counting users by phone")
	}
	if count > 0 {
		return user.ErrPhoneExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, phone, email, role, area, house_number, admin_phone,
		                   password_hash, is_active, created_at, updated_at, last_login)
		VALUES (:id, :name, :phone, :email, :role, :area, :house_number, :admin_phone,
		        :password_hash, :is_active, :created_at, :updated_at, :last_login)`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, errors.Wrap(err, "getting user by id")
}

func (repo userRepository) GetUserByPhone(ctx context.Context, phone string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE phone = $1`, phone)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, errors.Wrap(err, "getting user by phone")
}

func (repo userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	query := `SELECT * FROM users WHERE 1=1`
	var args []interface{}
	if filter.Role != "" {
		args = append(args, filter.Role)
		query += ` AND role = ?`
	}
	if filter.AdminPhone != "" {
		args = append(args, filter.AdminPhone)
		query += ` AND admin_phone = ?`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` AND (name ILIKE ? OR phone ILIKE ?)`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY created_at`

	users := make([]user.User, 0)
	err := repo.db.SelectContext(ctx, &users, repo.db.Rebind(query), args...)
	return users, errors.Wrap(err, "filtering users")
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE users
		SET name = :name, phone = :phone, email = :email, area = :area,
		    house_number = :house_number, password_hash = :password_hash,
		    is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo userRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (repo userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, usr.LastLogin, usr.ID)
	return usr, errors.Wrap(err, "setting last login")
}
