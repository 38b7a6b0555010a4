package main

import (
	"log/slog"

	"github.com/nadav5199/persofy/internal/config"
	"github.com/nadav5199/persofy/internal/services"
	"github.com/nadav5199/persofy/internal/services/activity"
	"github.com/nadav5199/persofy/internal/sessions"
	"github.com/nadav5199/persofy/internal/storage/mongodb"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	sessionStore sessions.Store
	validator    *govalidator.Validate
	formDecoder  *schema.Decoder
}

func NewApplication(
	cfg *config.Config,
	log *slog.Logger,
	storage *mongodb.Storage,
	sessionStore sessions.Store,
	taskExecutor activity.TaskExecutor,
) *Application {
	templates, err := newTemplateCache()
	if err != nil {
		panic(err)
	}
	formDecoder := schema.NewDecoder()
	formDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		services:     services.New(log, cfg, storage, taskExecutor),
		sessionStore: sessionStore,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		formDecoder:  formDecoder,
		Http: &Http{
			log:       log,
			cfg:       cfg,
			templates: templates,
		},
	}
}
