package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nadav5199/persofy/internal/domain/filters"
	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	movies    []models.Movie
	listCalls int
}

func (f *fakeStorage) Get(ctx context.Context, id string) (*models.Movie, error) {
	for _, movie := range f.movies {
		if movie.ID == id {
			return &movie, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) List(ctx context.Context, _ filters.Catalog) ([]models.Movie, error) {
	f.listCalls++
	return f.movies, nil
}

func (f *fakeStorage) GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	var found []models.Movie
	for _, id := range ids {
		for _, movie := range f.movies {
			if movie.ID == id {
				found = append(found, movie)
			}
		}
	}
	return found, nil
}

func (f *fakeStorage) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	f.movies = append(f.movies, *movie)
	return movie, nil
}

func (f *fakeStorage) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	for i := range f.movies {
		if f.movies[i].ID == movie.ID {
			f.movies[i] = *movie
			return movie, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) Delete(ctx context.Context, id string) error {
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStorage) DistinctTags(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, movie := range f.movies {
		for _, tag := range movie.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func newTestService(movies []models.Movie, ttl time.Duration) (*CatalogService, *fakeStorage) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fake := &fakeStorage{movies: movies}
	return New(log, fake, ttl), fake
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	movies := []models.Movie{{ID: "m1", Name: "Heat"}}

	t.Run("served from cache within the TTL", func(t *testing.T) {
		service, fake := newTestService(movies, time.Hour)
		_, err := service.Snapshot(ctx)
		require.NoError(t, err)
		_, err = service.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, fake.listCalls)
	})

	t.Run("refetched after the TTL", func(t *testing.T) {
		service, fake := newTestService(movies, -time.Second)
		_, err := service.Snapshot(ctx)
		require.NoError(t, err)
		_, err = service.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, fake.listCalls)
	})

	t.Run("mutations invalidate the cache", func(t *testing.T) {
		service, fake := newTestService(movies, time.Hour)
		_, err := service.Snapshot(ctx)
		require.NoError(t, err)

		_, err = service.Create(ctx, &models.Movie{ID: "m2", Name: "Ronin"})
		require.NoError(t, err)

		snapshot, err := service.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, fake.listCalls)
		assert.Len(t, snapshot, 2)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService([]models.Movie{{ID: "m1", Name: "Heat"}}, time.Hour)

	t.Run("found", func(t *testing.T) {
		movie, err := service.Get(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, "Heat", movie.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the movie", func(t *testing.T) {
		service, fake := newTestService([]models.Movie{{ID: "m1"}}, time.Hour)
		require.NoError(t, service.Delete(ctx, "m1"))
		assert.Empty(t, fake.movies)
	})

	t.Run("missing", func(t *testing.T) {
		service, _ := newTestService(nil, time.Hour)
		assert.ErrorIs(t, service.Delete(ctx, "nope"), ErrMovieNotFound)
	})
}
