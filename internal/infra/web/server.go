package web

import (
	"context"
	"net/http"
	"time"

	"crux-coach/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	genUC      usecase.GenerationUseCase
	profileUC  usecase.ProfileUseCase
	workoutUC  usecase.WorkoutUseCase
	scheduleUC usecase.ScheduleUseCase
	auth       *AuthManager
	dev        bool
	log        *zerolog.Logger

	httpSrv *http.Server
}

func NewServer(
	genUC usecase.GenerationUseCase,
	profileUC usecase.ProfileUseCase,
	workoutUC usecase.WorkoutUseCase,
	scheduleUC usecase.ScheduleUseCase,
	auth *AuthManager,
	dev bool,
	logger *zerolog.Logger,
) *Server {
	srvLog := logger.With().Str("component", "WebServer").Logger()
	return &Server{
		genUC:      genUC,
		profileUC:  profileUC,
		workoutUC:  workoutUC,
		scheduleUC: scheduleUC,
		auth:       auth,
		dev:        dev,
		log:        &srvLog,
	}
}

// Routes builds the chi router for the whole API surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.identityMiddleware)

	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate-workouts/start", s.startGenerationHandler)
		r.Get("/generate-workouts/status", s.generationStatusHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Put("/profile", s.saveProfileHandler)
			r.Get("/profile", s.getProfileHandler)
			r.Delete("/profile", s.deleteProfileHandler)

			r.Post("/workouts", s.saveWorkoutHandler)
			r.Get("/workouts", s.listWorkoutsHandler)
			r.Get("/workouts/{workoutID}", s.getWorkoutHandler)
			r.Delete("/workouts/{workoutID}", s.deleteWorkoutHandler)

			r.Post("/schedule", s.scheduleWorkoutHandler)
			r.Get("/schedule", s.listScheduleHandler)
			r.Patch("/schedule/{scheduleID}", s.updateScheduleHandler)
			r.Delete("/schedule/{scheduleID}", s.deleteScheduleHandler)
		})
	})

	return r
}

// Start runs the HTTP server until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("http server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
