package recommendations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadav5199/persofy/internal/clients/completions"
	"github.com/nadav5199/persofy/internal/domain/models"
)

// maxCatalogNames caps the catalog enumeration embedded in the prompt, so a
// very large catalog degrades to a truncated list instead of an unbounded
// request. Chunking the catalog across requests is the known scalability
// gap beyond this cap.
const maxCatalogNames = 500

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Preferences is the persisted user state the prompt is built from.
type Preferences struct {
	FavoriteGenres []string
	Reviews        map[string]int // movie id -> score
}

type RecsService struct {
	log        *slog.Logger
	completer  Completer
	maxRetries int
	backoff    time.Duration
}

func New(log *slog.Logger, completer Completer, maxRetries int, backoff time.Duration) *RecsService {
	return &RecsService{
		log:        log,
		completer:  completer,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// ForUser asks the completion service for picks and resolves them against
// the catalog. The result only ever contains catalog movies: candidate
// lines that match nothing are dropped, since the external model's output
// is not guaranteed well-formed. On a rate-limit signal the request is
// retried after a fixed backoff until the retry budget runs out.
func (s *RecsService) ForUser(ctx context.Context, prefs Preferences, catalog []models.Movie) ([]models.Movie, error) {
	const op = "recommendations.RecsService.ForUser"
	log := s.log.With("op", op)

	prompt := buildPrompt(prefs, catalog)
	retries := s.maxRetries
	var content string
	for {
		var err error
		content, err = s.completer.Complete(ctx, prompt)
		if err == nil {
			break
		}
		if errors.Is(err, completions.ErrRateLimited) && retries > 0 {
			retries--
			log.Warn("rate limit exceeded, retrying after backoff", "backoff", s.backoff, "retriesLeft", retries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff):
			}
			continue
		}
		log.Error("completion request failed", "err", err.Error())
		return nil, err
	}

	candidates := parseNames(content)
	log.Debug("recommended movie names", "names", candidates)

	recommended := make([]models.Movie, 0, len(candidates))
	for _, movie := range catalog {
		if candidates[movie.Name] {
			recommended = append(recommended, movie)
		}
	}
	return recommended, nil
}

// parseNames splits the response into trimmed, nonblank candidate names.
func parseNames(content string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names[line] = true
		}
	}
	return names
}

func buildPrompt(prefs Preferences, catalog []models.Movie) string {
	byID := make(map[string]models.Movie, len(catalog))
	for _, movie := range catalog {
		byID[movie.ID] = movie
	}

	// "<name> (<score>)" for every reviewed movie still in the catalog;
	// unresolvable ids are skipped silently.
	watched := make([]string, 0, len(prefs.Reviews))
	for movieID, score := range prefs.Reviews {
		movie, ok := byID[movieID]
		if !ok {
			continue
		}
		watched = append(watched, fmt.Sprintf("%s (%d)", movie.Name, score))
	}

	available := make([]string, 0, len(catalog))
	for _, movie := range catalog {
		if len(available) == maxCatalogNames {
			break
		}
		available = append(available, movie.Name)
	}

	return fmt.Sprintf(`
The user has watched and rated the following movies:
%s

The user prefers the following genres:
%s

Here is a list of movies available in the database:
%s

Based on the user's watch history, ratings, and favorite genres, recommend 10 movies from the available movies list.
Prioritize the following:
1. Movies that were not watched by this user.
2. Movies from the same series that the user has watched if applicable.
3. Movies with similar tags to the ones the user rated highly.
4. Movies that fall under the user's favorite genres.

Please return only the names of the movies, each on a new line, without any additional text.
`,
		strings.Join(watched, ", "),
		strings.Join(prefs.FavoriteGenres, ", "),
		strings.Join(available, ", "),
	)
}
