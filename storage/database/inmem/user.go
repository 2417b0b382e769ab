package inmem

import (
	"context"
	"sort"
	"strings"

	"github.com/swachhapp/swachh/core/user"
)

type userRepository struct {
	db *userTable
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (r *userRepository) query() []user.User {
	res := make([]user.User, 0, len(r.db.t))
	for _, u := range r.db.t {
		res = append(res, *u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res
}

func (r *userRepository) CheckPhoneUniqueness(_ context.Context, phone string, excludedUsers ...user.User) error {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	excluded := func(usr user.User) bool {
		for _, ex := range excludedUsers {
			if ex.ID == usr.ID {
				return true
			}
		}
		return false
	}
	for _, usr := range r.query() {
		if usr.Phone == phone && !excluded(usr) {
			return user.ErrPhoneExists
		}
	}
	return nil
}

func (r *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[usr.ID] = &usr
	return usr, nil
}

func (r *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if usr, ok := r.db.t[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *userRepository) GetUserByPhone(_ context.Context, phone string) (user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, usr := range r.query() {
		if usr.Phone == phone {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *userRepository) FilterUsers(_ context.Context, filter user.QueryFilter) ([]user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]user.User, 0)
	search := strings.ToLower(filter.Search)
	for _, usr := range r.query() {
		if filter.Role != "" && usr.Role != filter.Role {
			continue
		}
		if filter.AdminPhone != "" && usr.AdminPhone != filter.AdminPhone {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(usr.Name), search) &&
			!strings.Contains(usr.Phone, search) {
			continue
		}
		res = append(res, usr)
	}
	return res, nil
}

func (r *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	orig, ok := r.db.t[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.CreatedAt = orig.CreatedAt
	usr.LastLogin = orig.LastLogin
	r.db.t[usr.ID] = &usr
	return usr, nil
}

func (r *userRepository) DeleteUser(_ context.Context, id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.db.t, id)
	return nil
}

func (r *userRepository) SetLastLogin(_ context.Context, usr user.User) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if orig, ok := r.db.t[usr.ID]; ok {
		orig.LastLogin = usr.LastLogin
	}
	return usr, nil
}
