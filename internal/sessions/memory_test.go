package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	user := &models.User{ID: "u1", Name: "alice", Icon: "fox.png", Role: models.RoleUser}
	short := 30 * time.Minute
	long := 240 * time.Hour

	t.Run("short-lived by default", func(t *testing.T) {
		session := New(user, false, short, long)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "u1", session.UserID)
		assert.False(t, session.RememberMe)
		assert.WithinDuration(t, time.Now().Add(short), session.ExpiresAt, time.Second)
	})

	t.Run("remember me extends the lifetime", func(t *testing.T) {
		session := New(user, true, short, long)
		assert.True(t, session.RememberMe)
		assert.WithinDuration(t, time.Now().Add(long), session.ExpiresAt, time.Second)
	})

	t.Run("every session gets a fresh id", func(t *testing.T) {
		a := New(user, false, short, long)
		b := New(user, false, short, long)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestCartIDs(t *testing.T) {
	session := &Session{Cart: []models.Movie{{ID: "m1"}, {ID: "m2"}, {ID: "m1"}}}
	assert.Equal(t, []string{"m1", "m2", "m1"}, session.CartIDs())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save then get round trip", func(t *testing.T) {
		store := NewMemoryStore()
		session := &Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
	})

	t.Run("save overwrites previous state", func(t *testing.T) {
		store := NewMemoryStore()
		session := &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(ctx, session))
		session.Cart = []models.Movie{{ID: "m1"}}
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, got.Cart, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired session behaves as missing", func(t *testing.T) {
		store := NewMemoryStore()
		session := &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(ctx, session))

		store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("close stops the janitor and is idempotent", func(t *testing.T) {
		store := NewMemoryStore()
		store.Close()
		store.Close()

		// The store itself keeps working; only the sweeper is gone.
		session := &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(ctx, session))
		_, err := store.Get(ctx, "s1")
		assert.NoError(t, err)
	})

	t.Run("destroy", func(t *testing.T) {
		store := NewMemoryStore()
		session := &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(ctx, session))
		require.NoError(t, store.Destroy(ctx, "s1"))

		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
