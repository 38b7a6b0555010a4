package services

import (
	"log/slog"

	"github.com/nadav5199/persofy/internal/clients/completions"
	"github.com/nadav5199/persofy/internal/config"
	"github.com/nadav5199/persofy/internal/services/activity"
	"github.com/nadav5199/persofy/internal/services/auth"
	"github.com/nadav5199/persofy/internal/services/catalog"
	"github.com/nadav5199/persofy/internal/services/recommendations"
	"github.com/nadav5199/persofy/internal/services/store"
	"github.com/nadav5199/persofy/internal/storage/mongodb"
)

type Services struct {
	Auth     *auth.AuthService
	Catalog  *catalog.CatalogService
	Store    *store.StoreService
	Recs     *recommendations.RecsService
	Activity *activity.Recorder
}

func New(log *slog.Logger, cfg *config.Config, storage *mongodb.Storage, taskExecutor activity.TaskExecutor) *Services {
	recorder := activity.NewRecorder(log, storage.Activities, taskExecutor)
	completer := completions.New(
		log,
		cfg.Completions.BaseURL,
		cfg.Completions.APIKey,
		cfg.Completions.Model,
		cfg.Completions.Timeout,
	)
	return &Services{
		Auth:     auth.New(log, storage.Users, storage.Movies, recorder),
		Catalog:  catalog.New(log, storage.Movies, cfg.Catalog.SnapshotTTL),
		Store:    store.New(log, storage.Movies, storage.Users, recorder),
		Recs:     recommendations.New(log, completer, cfg.Completions.MaxRetries, cfg.Completions.RetryBackoff),
		Activity: recorder,
	}
}
