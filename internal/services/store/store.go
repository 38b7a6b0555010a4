package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"
)

type MoviesGetter interface {
	Get(ctx context.Context, id string) (*models.Movie, error)
}

type UsersStorage interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type ActivityRecorder interface {
	Record(username string, activityType string)
}

// StoreService drives the cart/purchase/review state machine. The cart
// itself lives in the caller's session; this service owns the transitions
// and the persisted side of them.
type StoreService struct {
	log        *slog.Logger
	movies     MoviesGetter
	users      UsersStorage
	activities ActivityRecorder
}

func New(log *slog.Logger, movies MoviesGetter, users UsersStorage, activities ActivityRecorder) *StoreService {
	return &StoreService{
		log:        log,
		movies:     movies,
		users:      users,
		activities: activities,
	}
}

// AddToCart appends a snapshot of the movie to the cart. Duplicate adds are
// permitted: a second add of the same id is a second cart entry.
func (s *StoreService) AddToCart(ctx context.Context, username string, cart []models.Movie, movieID string) ([]models.Movie, error) {
	const op = "store.StoreService.AddToCart"
	log := s.log.With("op", op, "movieId", movieID)
	movie, err := s.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return cart, ErrMovieNotFound
		}
		log.Error(err.Error())
		return cart, err
	}
	s.activities.Record(username, models.ActivityAddToCart)
	return append(cart, *movie), nil
}

// RemoveFromCart drops every cart entry carrying the id.
func (s *StoreService) RemoveFromCart(cart []models.Movie, movieID string) []models.Movie {
	kept := cart[:0]
	for _, movie := range cart {
		if movie.ID != movieID {
			kept = append(kept, movie)
		}
	}
	return kept
}

// Checkout transitions every cart item to purchased: each id is appended to
// the user's purchased list unless already present, so repeating a checkout
// never duplicates purchases. The returned ids are the pending-review set.
// An empty cart is a successful no-op.
func (s *StoreService) Checkout(ctx context.Context, userID string, cart []models.Movie) ([]string, error) {
	const op = "store.StoreService.Checkout"
	log := s.log.With("op", op, "userId", userID)
	if len(cart) == 0 {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}

	purchased := make([]string, 0, len(cart))
	seen := make(map[string]bool, len(cart))
	for _, movie := range cart {
		if seen[movie.ID] {
			continue
		}
		seen[movie.ID] = true
		purchased = append(purchased, movie.ID)
		if !user.HasPurchased(movie.ID) {
			user.PurchasedMovies = append(user.PurchasedMovies, movie.ID)
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		log.Error(err.Error())
		return nil, err
	}
	s.activities.Record(user.Name, models.ActivityPurchase)
	return purchased, nil
}

// SubmitReviews upserts a score per movie id, last write wins. Scores for
// ids the user never purchased are skipped, keeping the purchased-before-
// reviewed invariant.
func (s *StoreService) SubmitReviews(ctx context.Context, userID string, scores map[string]int) error {
	const op = "store.StoreService.SubmitReviews"
	log := s.log.With("op", op, "userId", userID)
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	if user.Reviews == nil {
		user.Reviews = make(map[string]int, len(scores))
	}
	for movieID, score := range scores {
		if !user.HasPurchased(movieID) {
			log.Info("skipping review for movie the user never purchased", "movieId", movieID)
			continue
		}
		user.Reviews[movieID] = score
	}
	if err := s.users.Update(ctx, user); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}
