package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Activity kinds recorded in the audit log.
const (
	ActivityLogin     = "login"
	ActivityLogout    = "logout"
	ActivityAddToCart = "add-to-cart"
	ActivityPurchase  = "purchase"
)

type Movie struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Actors      []string  `json:"actors"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl"`
	TrailerURL  string    `json:"trailerUrl,omitempty"`
	Director    string    `json:"director"`
	Tags        []string  `json:"tags"`
	Rating      string    `json:"rating"` // string-encoded score, kept as stored
	Date        time.Time `json:"date"`
}

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    []byte
	Role            string
	Icon            string
	FavoriteGenres  []string
	PurchasedMovies []string
	Reviews         map[string]int // movie id -> score, last write wins
	Cart            []string       // persisted between sessions, flushed back on logout
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPurchased reports whether the movie id is in the user's purchased list.
func (u *User) HasPurchased(movieID string) bool {
	for _, id := range u.PurchasedMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

type Activity struct {
	ID       string
	Username string
	Type     string
	Datetime time.Time
}
