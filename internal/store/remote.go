package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
)

// RemoteStore is a Repository backed by a hosted drivestar record
// store (the `drivestar serve` API). Failures surface as
// *RepositoryError; the core never retries.
type RemoteStore struct {
	baseURL string
	client  *http.Client
}

var _ Repository = (*RemoteStore)(nil)

// NewRemote creates a RemoteStore for the API at baseURL.
func NewRemote(baseURL string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches all sessions, most recent first.
func (r *RemoteStore) List(ctx context.Context) ([]session.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/sessions", nil)
	if err != nil {
		return nil, &RepositoryError{Op: "list", Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &RepositoryError{Op: "list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RepositoryError{Op: "list", Err: apiError(resp)}
	}

	var sessions []session.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, &RepositoryError{Op: "list", Err: fmt.Errorf("decode response: %w", err)}
	}
	return sessions, nil
}

// Create persists a session on the remote store.
func (r *RemoteStore) Create(ctx context.Context, s session.Session) error {
	body, err := json.Marshal(s)
	if err != nil {
		return &RepositoryError{Op: "create", Err: fmt.Errorf("encode session: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/api/sessions", bytes.NewReader(body))
	if err != nil {
		return &RepositoryError{Op: "create", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &RepositoryError{Op: "create", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return &RepositoryError{Op: "create", Err: apiError(resp)}
	}
	return nil
}

// Delete removes a session by id.
func (r *RemoteStore) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		r.baseURL+"/api/sessions/"+id, nil)
	if err != nil {
		return &RepositoryError{Op: "delete", Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &RepositoryError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &RepositoryError{Op: "delete", Err: apiError(resp)}
	}
}

// Ping checks the remote health endpoint.
func (r *RemoteStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/health", nil)
	if err != nil {
		return &RepositoryError{Op: "ping", Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &RepositoryError{Op: "ping", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RepositoryError{Op: "ping", Err: apiError(resp)}
	}
	return nil
}

// Close is a no-op; the HTTP client holds no persistent connection
// worth tearing down explicitly.
func (r *RemoteStore) Close() error {
	return nil
}

// apiError extracts the server's {"error": ...} message, falling back
// to the HTTP status.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, payload.Error)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
