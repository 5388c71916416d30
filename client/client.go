// Package client is a small Go client for the workout generation API. It
// starts a generation job and polls its status until the job finishes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crux-coach/internal/domain/model"
	"crux-coach/internal/usecase"
)

const (
	defaultPollInterval = time.Second
	defaultMaxAttempts  = 180
)

// ErrPollTimeout reports that the job did not reach a terminal status within
// the configured number of attempts. The job itself may still be running.
var ErrPollTimeout = errors.New("generation still running after poll budget")

// ErrJobNotFound reports a 404 from the status endpoint, meaning the job id is
// unknown or the job expired.
var ErrJobNotFound = errors.New("job not found")

// JobStatus is the decoded status payload.
type JobStatus struct {
	JobID      string          `json:"jobId"`
	Status     string          `json:"status"`
	Progress   string          `json:"progress,omitempty"`
	Workouts   []model.Workout `json:"workouts,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorStack string          `json:"errorStack,omitempty"`
}

type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithPolling overrides the poll interval and attempt budget.
func WithPolling(interval time.Duration, attempts int) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start submits a generation request and returns the job id.
func (c *Client) Start(ctx context.Context, req usecase.GenerateWorkoutsRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/generate-workouts/start", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var out struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode start response: %w", err)
	}
	if out.JobID == "" {
		return "", errors.New("start response missing jobId")
	}
	return out.JobID, nil
}

// Status fetches the current job snapshot once.
func (c *Client) Status(ctx context.Context, jobID string) (*JobStatus, error) {
	u := c.baseURL + "/api/v1/generate-workouts/status?jobId=" + url.QueryEscape(jobID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	default:
		return nil, apiError(resp)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &status, nil
}

// Wait polls until the job reaches a terminal status or the attempt budget
// runs out. A job that finished with an error is returned alongside a non-nil
// error carrying the job's message; ErrPollTimeout means the budget ran out.
func (c *Client) Wait(ctx context.Context, jobID string) (*JobStatus, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		status, err := c.Status(ctx, jobID)
		if err != nil {
			return nil, err
		}
		switch status.Status {
		case string(model.JobStatusDone):
			return status, nil
		case string(model.JobStatusError):
			return status, fmt.Errorf("generation failed: %s", status.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	return nil, ErrPollTimeout
}

// Generate is the convenience path: start a job and wait for its workouts.
func (c *Client) Generate(ctx context.Context, req usecase.GenerateWorkoutsRequest) ([]model.Workout, error) {
	jobID, err := c.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	status, err := c.Wait(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return status.Workouts, nil
}

func (c *Client) authorize(r *http.Request) {
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		if body.Details != "" {
			return fmt.Errorf("api error (%d): %s: %s", resp.StatusCode, body.Error, body.Details)
		}
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
