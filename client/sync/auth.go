package sync

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/client/rest"
	"github.com/swachhapp/swachh/client/session"
	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/user"
)

// Authenticator owns the login/signup/logout flow: it exchanges credentials
// for a token, persists the session and arms the API client with the token.
type Authenticator struct {
	api   *rest.Client
	store session.Store
}

func NewAuthenticator(api *rest.Client, store session.Store) *Authenticator {
	return &Authenticator{api: api, store: store}
}

func (a *Authenticator) Login(ctx context.Context, phone, password string) (Identity, error) {
	if core.CleanString(phone) == "" || password == "" {
		return Identity{}, core.NewValidationError(errors.New("please enter your phone number and password"))
	}

	res, err := a.api.Login(ctx, phone, password)
	if err != nil {
		return Identity{}, errors.Wrap(err, "failed to log in")
	}
	return a.establish(res)
}

func (a *Authenticator) Register(ctx context.Context, nu user.NewUser) (Identity, error) {
	if core.CleanString(nu.Name) == "" || core.CleanString(nu.Phone) == "" ||
		nu.Password == "" || core.CleanString(nu.Area) == "" {
		return Identity{}, core.NewValidationError(errors.New("please fill all signup details"))
	}

	res, err := a.api.Register(ctx, nu)
	if err != nil {
		return Identity{}, errors.Wrap(err, "failed to sign up")
	}
	return a.establish(res)
}

func (a *Authenticator) establish(res rest.LoginResponse) (Identity, error) {
	s := session.Session{User: res.User, Token: res.Token}
	if err := a.store.Save(s); err != nil {
		return Identity{}, errors.Wrap(err, "persisting session")
	}
	a.api.Token = res.Token
	return newIdentity(s), nil
}

// Logout clears the session and disarms the client.
func (a *Authenticator) Logout() error {
	a.api.Token = ""
	return a.store.Clear()
}
