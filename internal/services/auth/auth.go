package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type MoviesResolver interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error)
}

type ActivityRecorder interface {
	Record(username string, activityType string)
}

type AuthService struct {
	log        *slog.Logger
	users      UsersStorage
	movies     MoviesResolver
	activities ActivityRecorder
}

func New(log *slog.Logger, users UsersStorage, movies MoviesResolver, activities ActivityRecorder) *AuthService {
	return &AuthService{
		log:        log,
		users:      users,
		movies:     movies,
		activities: activities,
	}
}

// Authenticate checks the credentials against the stored bcrypt hash.
// It distinguishes unknown user from bad password because the sign-in form
// renders the two messages inline.
func (s *AuthService) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := s.log.With("op", op, "name", name)
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	s.activities.Record(user.Name, models.ActivityLogin)
	return user, nil
}

// Signup checks the name is free before inserting; the unique index on the
// users collection closes the remaining insert race, surfacing as ErrConflict.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := s.log.With("op", op, "name", name, "email", email)
	if _, err := s.users.GetByName(ctx, name); err == nil {
		log.Info("user already exists")
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	user, err := s.users.Insert(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// RestoreCart loads full movie documents for the ids persisted on the user,
// so the cart renders without per-item lookups for the rest of the session.
// A missing or unresolvable cart yields an empty one, never an error.
func (s *AuthService) RestoreCart(ctx context.Context, user *models.User) []models.Movie {
	const op = "auth.AuthService.RestoreCart"
	if len(user.Cart) == 0 {
		return nil
	}
	movies, err := s.movies.GetByIDs(ctx, user.Cart)
	if err != nil {
		s.log.With("op", op, "userId", user.ID).Warn("failed to restore cart, starting empty", "err", err.Error())
		return nil
	}
	return movies
}

// Logout flushes the in-session cart back onto the user document so it
// survives across sessions, and records the logout.
func (s *AuthService) Logout(ctx context.Context, userID string, cartIDs []string) error {
	const op = "auth.AuthService.Logout"
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
	user.Cart = cartIDs
	if err := s.users.Update(ctx, user); err != nil {
		log.Error(err.Error())
		return err
	}
	s.activities.Record(user.Name, models.ActivityLogout)
	return nil
}

func (s *AuthService) SetIcon(ctx context.Context, userID string, icon string) error {
	const op = "auth.AuthService.SetIcon"
	return s.updateUser(ctx, op, userID, func(user *models.User) {
		user.Icon = icon
	})
}

func (s *AuthService) SetFavoriteGenres(ctx context.Context, userID string, genres []string) error {
	const op = "auth.AuthService.SetFavoriteGenres"
	return s.updateUser(ctx, op, userID, func(user *models.User) {
		user.FavoriteGenres = genres
	})
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.With("op", op, "userId", userID).Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *AuthService) updateUser(ctx context.Context, op string, userID string, apply func(*models.User)) error {
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
	apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}
