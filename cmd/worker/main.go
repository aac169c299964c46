package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"repurpose-backend/internal/adapter/repo"
	"repurpose-backend/internal/generation"
	"repurpose-backend/internal/infra"
	"repurpose-backend/internal/provider/ai"
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
		logger.Fatal().Err(err).Msg("worker: database connection failed")
	}
	defer pool.Close()

	provider, err := ai.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: provider init failed")
	}

	queue := repo.NewTaskQueue(pool)
	orchestrator := generation.NewOrchestrator(
		repo.NewJobRepository(pool),
		repo.NewGeneratedAssetRepository(pool),
		repo.NewFormatRepository(pool),
		provider,
		logger,
	)

	logger.Info().
		Str("provider", cfg.AIProvider).
		Dur("poll", cfg.WorkerPoll).
		Msg("worker: started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("worker: shutting down")
			return
		default:
		}

		task, err := queue.Claim(ctx)
		if err != nil {
			if !errors.Is(err, repo.ErrNoTask) {
				logger.Error().Err(err).Msg("worker: claim failed")
			}
			sleep(ctx, cfg.WorkerPoll)
			continue
		}

		logger.Info().
			Str("task_id", task.ID.String()).
			Str("job_id", task.JobID.String()).
			Msg("worker: task claimed")

		orchestrator.Run(ctx, task.Payload)

		// Failed jobs are terminal; the task is consumed either way.
		if err := queue.Complete(ctx, task.ID); err != nil {
			logger.Error().Err(err).Str("task_id", task.ID.String()).Msg("worker: complete failed")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
