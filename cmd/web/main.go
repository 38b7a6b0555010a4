package main

import (
	"context"
	"flag"
	"os"

	"github.com/nadav5199/persofy/internal/config"
	"github.com/nadav5199/persofy/internal/lib/logger"
	"github.com/nadav5199/persofy/internal/sessions"
	"github.com/nadav5199/persofy/internal/storage/mongodb"
	"github.com/nadav5199/persofy/internal/tasks"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.Timeout)
	defer cancel()
	storage, err := mongodb.New(ctx, cfg.DB.URI, cfg.DB.Database)
	if err != nil {
		panic(err)
	}
	defer storage.Close(context.Background())
	log.Info("database connection established", "database", cfg.DB.Database)

	var sessionStore sessions.Store
	if cfg.Redis.Enabled {
		sessionStore, err = sessions.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			panic(err)
		}
		log.Info("session store: redis", "addr", cfg.Redis.Addr)
	} else {
		memStore := sessions.NewMemoryStore()
		defer memStore.Close()
		sessionStore = memStore
		log.Info("session store: in-memory")
	}

	taskExecutor := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	taskExecutor.Run()

	app := NewApplication(cfg, log, storage, sessionStore, taskExecutor)
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := taskExecutor.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown failed", "err", err.Error())
	}
}
