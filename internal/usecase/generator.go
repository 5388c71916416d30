package usecase

import (
	"context"
	"time"

	"crux-coach/internal/domain/model"
	"crux-coach/internal/domain/ports/adapter"
	"crux-coach/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// WorkoutGenerator produces one workout for one focus area. It is the unit of
// retryable work in the pipeline.
type WorkoutGenerator interface {
	GenerateOne(ctx context.Context, profile *model.UserProfile, focus model.TrainingFocus, preferredDays []string, notes string) (*model.Workout, error)
}

// Compile-time check
var _ WorkoutGenerator = (*modelWorkoutGenerator)(nil)

// modelWorkoutGenerator composes prompt builder -> model client -> parser.
// It propagates the provider and parser error kinds unchanged and adds no
// failure kinds of its own.
type modelWorkoutGenerator struct {
	ai     adapter.ModelClient
	params adapter.GenerateParams
	log    *zerolog.Logger
}

func NewWorkoutGenerator(ai adapter.ModelClient, params adapter.GenerateParams, logger *zerolog.Logger) *modelWorkoutGenerator {
	genLog := logger.With().Str("component", "WorkoutGenerator").Logger()
	return &modelWorkoutGenerator{ai: ai, params: params, log: &genLog}
}

func (g *modelWorkoutGenerator) GenerateOne(ctx context.Context, profile *model.UserProfile, focus model.TrainingFocus, preferredDays []string, notes string) (*model.Workout, error) {
	prompt := BuildWorkoutPrompt(profile, focus, preferredDays, notes)

	promptTokens := EstimatePromptTokens(prompt)
	metrics.ObservePromptTokens(g.ai.Name(), g.params.Model, promptTokens)
	g.log.Debug().Str("focus", string(focus)).Int("prompt_tokens", promptTokens).Msg("prompt built")

	start := time.Now()
	raw, err := g.ai.Generate(ctx, prompt, g.params)
	latency := time.Since(start)
	metrics.ObserveModelCall(g.ai.Name(), g.params.Model, int(latency/time.Millisecond), err == nil)
	if err != nil {
		return nil, err
	}

	w, err := ParseWorkout(raw, focus)
	if err != nil {
		g.log.Error().Err(err).Str("focus", string(focus)).Msg("response rejected")
		return nil, err
	}

	metrics.IncWorkoutGenerated(string(focus))
	g.log.Info().Str("focus", string(focus)).Str("title", w.Title).Dur("latency", latency).Msg("workout generated")
	return w, nil
}
