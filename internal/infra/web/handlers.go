package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
	"crux-coach/internal/infra/logging"
	"crux-coach/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, status, body)
}

// startGenerationHandler kicks off the detached generation pipeline and
// returns the job id immediately.
func (s *Server) startGenerationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithUserID(r.Context(), userIDFrom(r.Context()))

	var req usecase.GenerateWorkoutsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	jobID, err := s.genUC.Start(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("failed to start generation job")
		writeError(w, http.StatusInternalServerError, "Failed to start workout generation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"jobId": jobID})
}

// generationStatusHandler returns the current job snapshot. Unknown and
// expired jobs are indistinguishable to the caller.
func (s *Server) generationStatusHandler(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "Missing jobId parameter", "")
		return
	}

	ctx := logging.WithJobID(r.Context(), jobID)
	job, err := s.genUC.Status(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "Job not found",
				"jobId": jobID,
			})
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("failed to read job status")
		writeError(w, http.StatusInternalServerError, "Failed to read job status", err.Error())
		return
	}

	resp := jobStatusResponse{
		JobID:     job.JobID,
		Status:    string(job.Status),
		Progress:  job.Progress,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	switch job.Status {
	case model.JobStatusDone:
		resp.Workouts = job.Workouts
	case model.JobStatusError:
		resp.Error = job.Error
		if s.dev {
			resp.ErrorStack = job.ErrorStack
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type jobStatusResponse struct {
	JobID      string          `json:"jobId"`
	Status     string          `json:"status"`
	Progress   string          `json:"progress,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Workouts   []model.Workout `json:"workouts,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorStack string          `json:"errorStack,omitempty"`
}

// ===== Profile =====

func (s *Server) saveProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var p model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	saved, err := s.profileUC.Save(r.Context(), userID, &p)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid profile", err.Error())
			return
		}
		s.log.Error().Err(err).Msg("failed to save profile")
		writeError(w, http.StatusInternalServerError, "Failed to save profile", "")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.profileUC.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load profile", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.profileUC.Delete(r.Context(), userIDFrom(r.Context())); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Workouts =====

func (s *Server) saveWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var wk model.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	saved, err := s.workoutUC.Save(r.Context(), userID, &wk)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid workout", err.Error())
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "Workout already saved", "")
		default:
			s.log.Error().Err(err).Msg("failed to save workout")
			writeError(w, http.StatusInternalServerError, "Failed to save workout", "")
		}
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) listWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.workoutUC.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workouts", "")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) getWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	wk, err := s.workoutUC.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "workoutID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load workout", "")
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) deleteWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.workoutUC.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "workoutID")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete workout", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Schedule =====

func (s *Server) scheduleWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var sw model.ScheduledWorkout
	if err := json.NewDecoder(r.Body).Decode(&sw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	saved, err := s.scheduleUC.Schedule(r.Context(), userID, &sw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid schedule entry", err.Error())
			return
		}
		s.log.Error().Err(err).Msg("failed to schedule workout")
		writeError(w, http.StatusInternalServerError, "Failed to schedule workout", "")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) listScheduleHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.scheduleUC.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedule", "")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type scheduleUpdateRequest struct {
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
}

func (s *Server) updateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	scheduleID := chi.URLParam(r, "scheduleID")

	var req scheduleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.ScheduledDate == nil && req.Completed == nil {
		writeError(w, http.StatusBadRequest, "Nothing to update", "")
		return
	}

	var (
		updated *model.ScheduledWorkout
		err     error
	)
	if req.ScheduledDate != nil {
		updated, err = s.scheduleUC.Reschedule(r.Context(), userID, scheduleID, *req.ScheduledDate)
	}
	if err == nil && req.Completed != nil {
		updated, err = s.scheduleUC.SetCompleted(r.Context(), userID, scheduleID, *req.Completed)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Schedule entry not found", "")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid update", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update schedule entry", "")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteScheduleHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduleUC.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "scheduleID")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Schedule entry not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete schedule entry", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
