package recommendations

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nadav5199/persofy/internal/clients/completions"
	"github.com/nadav5199/persofy/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (c *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	i := c.calls
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

func newTestService(completer Completer, maxRetries int) *RecsService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, completer, maxRetries, time.Millisecond)
}

func TestForUser(t *testing.T) {
	ctx := context.Background()
	catalog := []models.Movie{
		{ID: "m1", Name: "Inception"},
		{ID: "m2", Name: "The Matrix"},
		{ID: "m3", Name: "Heat"},
	}

	t.Run("resolves returned names against the catalog", func(t *testing.T) {
		completer := &scriptedCompleter{responses: []string{"The Matrix\nHeat\n"}}
		service := newTestService(completer, 3)
		movies, err := service.ForUser(ctx, Preferences{}, catalog)
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, "The Matrix", movies[0].Name)
		assert.Equal(t, "Heat", movies[1].Name)
	})

	t.Run("drops names not in the catalog", func(t *testing.T) {
		completer := &scriptedCompleter{responses: []string{"The Matrix\nA Movie That Does Not Exist\n"}}
		service := newTestService(completer, 3)
		movies, err := service.ForUser(ctx, Preferences{}, catalog)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "The Matrix", movies[0].Name)
	})

	t.Run("tolerates blank lines and padding", func(t *testing.T) {
		completer := &scriptedCompleter{responses: []string{"\n  Heat  \n\n"}}
		service := newTestService(completer, 3)
		movies, err := service.ForUser(ctx, Preferences{}, catalog)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Heat", movies[0].Name)
	})

	t.Run("only catalog matches survive, preferences or not", func(t *testing.T) {
		small := []models.Movie{
			{ID: "m1", Name: "Inception"},
			{ID: "m2", Name: "The Matrix"},
		}
		completer := &scriptedCompleter{responses: []string{"The Matrix\nNonexistent Movie\n"}}
		service := newTestService(completer, 3)
		prefs := Preferences{
			FavoriteGenres: []string{"Sci-Fi"},
			Reviews:        map[string]int{"m1": 5},
		}
		movies, err := service.ForUser(ctx, prefs, small)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "The Matrix", movies[0].Name)
	})

	t.Run("retries after rate limiting", func(t *testing.T) {
		completer := &scriptedCompleter{
			errs:      []error{completions.ErrRateLimited, completions.ErrRateLimited, nil},
			responses: []string{"", "", "Inception"},
		}
		service := newTestService(completer, 3)
		movies, err := service.ForUser(ctx, Preferences{}, catalog)
		require.NoError(t, err)
		assert.Equal(t, 3, completer.calls)
		require.Len(t, movies, 1)
		assert.Equal(t, "Inception", movies[0].Name)
	})

	t.Run("gives up when the retry budget is spent", func(t *testing.T) {
		completer := &scriptedCompleter{
			errs: []error{
				completions.ErrRateLimited,
				completions.ErrRateLimited,
				completions.ErrRateLimited,
			},
		}
		service := newTestService(completer, 2)
		_, err := service.ForUser(ctx, Preferences{}, catalog)
		assert.ErrorIs(t, err, completions.ErrRateLimited)
		assert.Equal(t, 3, completer.calls)
	})

	t.Run("prompt carries ratings, genres and the catalog", func(t *testing.T) {
		completer := &scriptedCompleter{responses: []string{""}}
		service := newTestService(completer, 0)
		prefs := Preferences{
			FavoriteGenres: []string{"Sci-Fi", "Crime"},
			Reviews:        map[string]int{"m1": 5, "gone": 3},
		}
		_, err := service.ForUser(ctx, prefs, catalog)
		require.NoError(t, err)
		require.Len(t, completer.prompts, 1)
		prompt := completer.prompts[0]
		assert.Contains(t, prompt, "Inception (5)")
		assert.Contains(t, prompt, "Sci-Fi, Crime")
		assert.Contains(t, prompt, "Inception, The Matrix, Heat")
		// Reviews for ids no longer in the catalog are skipped.
		assert.NotContains(t, prompt, "(3)")
	})

	t.Run("prompt catalog is capped", func(t *testing.T) {
		big := make([]models.Movie, maxCatalogNames+50)
		for i := range big {
			big[i] = models.Movie{ID: strconv.Itoa(i), Name: "placeholder"}
		}
		prompt := buildPrompt(Preferences{}, big)
		assert.Equal(t, maxCatalogNames, strings.Count(prompt, "placeholder"))
	})
}
