package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crux-coach/internal/config"
	"crux-coach/internal/domain/ports/adapter"
	"crux-coach/internal/domain/ports/repository"
	aiAdapters "crux-coach/internal/infra/adapters/ai"
	"crux-coach/internal/infra/db/memstore"
	pg "crux-coach/internal/infra/db/postgres"
	"crux-coach/internal/infra/jobstore"
	"crux-coach/internal/infra/logging"
	"crux-coach/internal/infra/metrics"
	red "crux-coach/internal/infra/redis"
	"crux-coach/internal/infra/sched"
	"crux-coach/internal/infra/web"
	"crux-coach/internal/infra/worker"
	"crux-coach/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (verbose logs, error stacks in responses)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Job store (Redis when configured, in-memory otherwise) ----
	var jobs repository.JobStore
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		jobs = red.NewJobStore(redisClient, cfg.Jobs.TTL)
		logger.Info().Msg("job store: redis")
	} else {
		jobs = jobstore.NewMemoryStore(logger)
		logger.Info().Msg("job store: in-memory")
	}

	// ---- Repositories (Postgres when configured, in-memory otherwise) ----
	var (
		profiles  repository.ProfileRepository
		workouts  repository.WorkoutRepository
		schedules repository.ScheduleRepository
	)
	if cfg.Database.URL != "" {
		pool, err := pg.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		profiles = pg.NewProfileRepo(pool)
		workouts = pg.NewWorkoutRepo(pool)
		schedules = pg.NewScheduleRepo(pool)
		logger.Info().Msg("storage: postgres")
	} else {
		profiles = memstore.NewProfileRepo()
		workouts = memstore.NewWorkoutRepo()
		schedules = memstore.NewScheduleRepo()
		logger.Info().Msg("storage: in-memory")
	}

	// ---- AI adapter (Anthropic -> Gemini -> OpenAI) ----
	var ai adapter.ModelClient
	switch {
	case cfg.AI.AnthropicKey != "":
		ai, err = aiAdapters.NewAnthropicAdapter(cfg.AI.AnthropicKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("anthropic adapter")
		}
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
	}
	logger.Info().Str("provider", ai.Name()).Str("model", cfg.AI.DefaultModel).Msg("AI adapter ready")

	// ---- Worker pool ----
	pool := worker.NewPool(cfg.Jobs.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	// ---- Use cases ----
	genParams := adapter.GenerateParams{
		Model:       cfg.AI.DefaultModel,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
	}
	generator := usecase.NewWorkoutGenerator(ai, genParams, logger)
	genUC := usecase.NewGenerationUseCase(jobs, generator, pool, cfg.Jobs.TTL, logger)
	profileUC := usecase.NewProfileUseCase(profiles)
	workoutUC := usecase.NewWorkoutUseCase(workouts)
	scheduleUC := usecase.NewScheduleUseCase(schedules)

	// ---- Background sweep ----
	if cfg.Jobs.SweepInterval > 0 {
		sweeper := sched.NewSweepWorker(cfg.Jobs.SweepInterval, cfg.Jobs.TTL, jobs, logger)
		go func() {
			if err := sweeper.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("sweep worker stopped")
			}
		}()
	}

	// ---- HTTP server ----
	var auth *web.AuthManager
	if cfg.Security.TokenSecret != "" {
		auth = web.NewAuthManager(cfg.Security.TokenSecret)
	}
	server := web.NewServer(genUC, profileUC, workoutUC, scheduleUC, auth, cfg.Runtime.Dev, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(fmt.Sprintf(":%d", cfg.Server.Port))
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
