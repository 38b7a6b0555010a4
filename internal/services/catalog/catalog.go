package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nadav5199/persofy/internal/domain/filters"
	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, f filters.Catalog) ([]models.Movie, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
	DistinctTags(ctx context.Context) ([]string, error)
}

// CatalogService serves movie browsing and admin catalog management.
// Browse queries always hit storage; only Snapshot, which feeds the
// recommendation prompt, is cached, with a TTL and explicit invalidation
// on every catalog mutation.
type CatalogService struct {
	log     *slog.Logger
	storage MoviesStorage

	mu          sync.Mutex
	snapshot    []models.Movie
	snapshotAt  time.Time
	snapshotTTL time.Duration
}

func New(log *slog.Logger, storage MoviesStorage, snapshotTTL time.Duration) *CatalogService {
	return &CatalogService{
		log:         log,
		storage:     storage,
		snapshotTTL: snapshotTTL,
	}
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Movie, error) {
	const op = "catalog.CatalogService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *CatalogService) List(ctx context.Context, f filters.Catalog) ([]models.Movie, error) {
	const op = "catalog.CatalogService.List"
	movies, err := s.storage.List(ctx, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *CatalogService) GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	const op = "catalog.CatalogService.GetByIDs"
	movies, err := s.storage.GetByIDs(ctx, ids)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *CatalogService) Tags(ctx context.Context) ([]string, error) {
	const op = "catalog.CatalogService.Tags"
	tags, err := s.storage.DistinctTags(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return tags, nil
}

// Snapshot returns the full catalog, cached for snapshotTTL. Staleness is
// bounded by the TTL and by Invalidate being called on every mutation.
func (s *CatalogService) Snapshot(ctx context.Context) ([]models.Movie, error) {
	s.mu.Lock()
	if s.snapshot != nil && time.Since(s.snapshotAt) < s.snapshotTTL {
		cached := s.snapshot
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	movies, err := s.List(ctx, filters.Catalog{})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshot = movies
	s.snapshotAt = time.Now()
	s.mu.Unlock()
	return movies, nil
}

func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

func (s *CatalogService) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	const op = "catalog.CatalogService.Create"
	log := s.log.With("op", op, "name", movie.Name)
	created, err := s.storage.Insert(ctx, movie)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	s.Invalidate()
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	const op = "catalog.CatalogService.Update"
	log := s.log.With("op", op, "id", movie.ID)
	updated, err := s.storage.Update(ctx, movie)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	s.Invalidate()
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	const op = "catalog.CatalogService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	s.Invalidate()
	return nil
}
