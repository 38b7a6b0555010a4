package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found or expired")

// Session is the server-held identity and working state for one signed-in
// browser. The client only ever carries the opaque ID in a cookie.
type Session struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Name          string         `json:"name"`
	Icon          string         `json:"icon,omitempty"`
	Role          string         `json:"role"`
	Cart          []models.Movie `json:"cart,omitempty"`
	PendingReview []string       `json:"pendingReview,omitempty"` // ids purchased at the last checkout
	RememberMe    bool           `json:"rememberMe"`
	ExpiresAt     time.Time      `json:"expiresAt"`
}

// Store is the single backing-storage contract route handlers see.
// Save overwrites any previous state under the session id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Destroy(ctx context.Context, id string) error
}

// New builds a session for the given user with a freshly generated id,
// defeating fixation: the id in use before sign-in is never reused.
func New(user *models.User, rememberMe bool, shortTTL, longTTL time.Duration) *Session {
	ttl := shortTTL
	if rememberMe {
		ttl = longTTL
	}
	return &Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Name:       user.Name,
		Icon:       user.Icon,
		Role:       user.Role,
		RememberMe: rememberMe,
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func (s *Session) TTL() time.Duration {
	return time.Until(s.ExpiresAt)
}

// CartIDs flattens the cart snapshots back into the id list persisted on the
// user document at logout.
func (s *Session) CartIDs() []string {
	ids := make([]string, 0, len(s.Cart))
	for _, movie := range s.Cart {
		ids = append(ids, movie.ID)
	}
	return ids
}
