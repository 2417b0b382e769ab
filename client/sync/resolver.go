package sync

import (
	"github.com/swachhapp/swachh/client/session"
)

// Identity is the slice of the session a dashboard needs.
type Identity struct {
	Phone string
	Name  string
	Role  string
	Area  string
	Token string
}

// Resolver turns the persisted session into an Identity. It is a pure read
// of the store; it never hits the network and never retries.
type Resolver struct {
	store session.Store
}

func NewResolver(store session.Store) *Resolver {
	return &Resolver{store: store}
}

func (r *Resolver) Resolve() (Identity, error) {
	s, err := r.store.Load()
	if err != nil {
		return Identity{}, ErrNotAuthenticated
	}
	if s.User.Phone == "" {
		return Identity{}, ErrNotAuthenticated
	}
	return newIdentity(s), nil
}

func newIdentity(s session.Session) Identity {
	return Identity{
		Phone: s.User.Phone,
		Name:  s.User.Name,
		Role:  s.User.Role,
		Area:  s.User.Area,
		Token: s.Token,
	}
}
