package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"repurpose-backend/internal/adapter/repo"
	"repurpose-backend/internal/http/handlers"
	"repurpose-backend/internal/http/httpapi"
	"repurpose-backend/internal/infra"
	"repurpose-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: database connection failed")
	}
	defer pool.Close()

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: storage init failed")
	}

	app := &handlers.App{
		Config:    cfg,
		Logger:    logger,
		Users:     repo.NewUserRepository(pool),
		Projects:  repo.NewProjectRepository(pool),
		Assets:    repo.NewAssetRepository(pool),
		Jobs:      repo.NewJobRepository(pool),
		Generated: repo.NewGeneratedAssetRepository(pool),
		Formats:   repo.NewFormatRepository(pool),
		Platforms: repo.NewPlatformRepository(pool),
		Settings:  repo.NewSettingsRepository(pool),
		Styles:    repo.NewStyleRepository(pool),
		Queue:     repo.NewTaskQueue(pool),
		Store:     store,
	}

	srv := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("api: listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("api: server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("api: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: shutdown failed")
	}
}
