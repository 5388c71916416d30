package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"crux-coach/internal/domain/model"
	"crux-coach/internal/usecase"
)

func generationServer(t *testing.T, pollsUntilDone int64, terminal string) *httptest.Server {
	t.Helper()
	var polls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/generate-workouts/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"jobId": "01JCLIENT"})
	})
	mux.HandleFunc("/api/v1/generate-workouts/status", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("jobId") != "01JCLIENT" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Job not found", "jobId": r.URL.Query().Get("jobId")})
			return
		}
		n := atomic.AddInt64(&polls, 1)
		resp := JobStatus{JobID: "01JCLIENT", Status: "running", Progress: "Creating workout 1/1: Power..."}
		if n >= pollsUntilDone {
			resp.Status = terminal
			switch terminal {
			case "done":
				resp.Workouts = []model.Workout{{ID: "w1", Title: "Power Session"}}
			case "error":
				resp.Error = "Failed to generate workout for Power: empty response"
			}
		}
		json.NewEncoder(w).Encode(resp)
	})
	return httptest.NewServer(mux)
}

func TestClient_GenerateRoundTrip(t *testing.T) {
	t.Parallel()

	srv := generationServer(t, 3, "done")
	defer srv.Close()

	c := New(srv.URL, WithPolling(time.Millisecond, 10))
	workouts, err := c.Generate(context.Background(), usecase.GenerateWorkoutsRequest{
		Profile:    &model.UserProfile{Name: "Alex"},
		FocusAreas: []model.TrainingFocus{model.FocusPower},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(workouts) != 1 || workouts[0].Title != "Power Session" {
		t.Fatalf("workouts = %+v", workouts)
	}
}

func TestClient_WaitSurfacesJobError(t *testing.T) {
	t.Parallel()

	srv := generationServer(t, 2, "error")
	defer srv.Close()

	c := New(srv.URL, WithPolling(time.Millisecond, 10))
	jobID, err := c.Start(context.Background(), usecase.GenerateWorkoutsRequest{
		Profile:    &model.UserProfile{Name: "Alex"},
		FocusAreas: []model.TrainingFocus{model.FocusPower},
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	status, err := c.Wait(context.Background(), jobID)
	if err == nil {
		t.Fatalf("expected an error for a failed job")
	}
	if status == nil || status.Error == "" {
		t.Fatalf("expected the failing snapshot alongside the error, got %+v", status)
	}
}

func TestClient_WaitTimesOut(t *testing.T) {
	t.Parallel()

	// Never reaches a terminal status within the budget.
	srv := generationServer(t, 1_000_000, "done")
	defer srv.Close()

	c := New(srv.URL, WithPolling(time.Millisecond, 3))
	_, err := c.Wait(context.Background(), "01JCLIENT")
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("expected ErrPollTimeout, got %v", err)
	}
}

func TestClient_StatusNotFound(t *testing.T) {
	t.Parallel()

	srv := generationServer(t, 1, "done")
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Status(context.Background(), "01JUNKNOWN")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
