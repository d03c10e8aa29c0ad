package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotLoggedIn is reported by NopSubmitter.
var ErrNotLoggedIn = errors.New("scoring: not logged in")

// NopSubmitter is used for unauthenticated sessions. It never does I/O.
type NopSubmitter struct{}

// Submit always reports that the score was not saved.
func (NopSubmitter) Submit(context.Context, Submission) (Result, error) {
	return failed(ErrNotLoggedIn)
}

// Recorder stores a submission for a named local player.
type Recorder interface {
	RecordScore(ctx context.Context, username string, s Submission) (Record, error)
}

// LocalSubmitter writes scores straight to a local store.
type LocalSubmitter struct {
	Store    Recorder
	Username string
}

// Submit validates and records s.
func (l LocalSubmitter) Submit(ctx context.Context, s Submission) (Result, error) {
	if err := s.Validate(); err != nil {
		return failed(err)
	}
	rec, err := l.Store.RecordScore(ctx, l.Username, s)
	if err != nil {
		return failed(fmt.Errorf("scoring: save: %w", err))
	}
	return Result{Success: true, Data: &rec}, nil
}

// HTTPSubmitter posts scores to the REST API.
type HTTPSubmitter struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPSubmitter returns a submitter for the API at baseURL.
func NewHTTPSubmitter(baseURL, token string) *HTTPSubmitter {
	return &HTTPSubmitter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type submitResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Score   *Record `json:"score"`
	Error   string  `json:"error"`
}

// Submit posts s to /api/scores with the bearer token.
func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) (Result, error) {
	if h.Token == "" {
		return failed(ErrNotLoggedIn)
	}

	body, err := json.Marshal(s)
	if err != nil {
		return failed(fmt.Errorf("scoring: encode: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return failed(fmt.Errorf("scoring: request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.Token)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return failed(fmt.Errorf("scoring: post: %w", err))
	}
	defer resp.Body.Close()

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return failed(fmt.Errorf("scoring: decode response (status %d): %w", resp.StatusCode, err))
	}

	if resp.StatusCode != http.StatusCreated || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return failed(fmt.Errorf("scoring: server rejected score: %s", msg))
	}

	return Result{Success: true, Data: out.Score}, nil
}
