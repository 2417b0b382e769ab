package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhapp/swachh/client/session"
	"github.com/swachhapp/swachh/core/user"
)

func TestResolver(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		r := NewResolver(session.NewMemStore())
		_, err := r.Resolve()
		assert.Equal(t, ErrNotAuthenticated, err)
	})

	t.Run("session without a phone is unusable", func(t *testing.T) {
		store := session.NewMemStore()
		require.NoError(t, store.Save(session.Session{Token: "tok"}))

		_, err := NewResolver(store).Resolve()
		assert.Equal(t, ErrNotAuthenticated, err)
	})

	t.Run("stored login resolves", func(t *testing.T) {
		store := session.NewMemStore()
		require.NoError(t, store.Save(session.Session{
			User:  user.User{Name: "Asha", Phone: "9876543210", Role: user.RoleResident, Area: "Sector 12"},
			Token: "tok-123",
		}))

		id, err := NewResolver(store).Resolve()
		require.NoError(t, err)
		assert.Equal(t, "9876543210", id.Phone)
		assert.Equal(t, user.RoleResident, id.Role)
		assert.Equal(t, "Sector 12", id.Area)
		assert.Equal(t, "tok-123", id.Token)
	})
}
