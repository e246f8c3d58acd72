// Package api provides HTTP handlers for the drivestar API.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler serves the session and stats endpoints.
type Handler struct {
	repo     store.Repository
	focusMin int
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository, focusMin int) *Handler {
	return &Handler{repo: repo, focusMin: focusMin}
}

// RegisterRoutes mounts the API routes on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/sessions", h.handleListSessions)
		r.Post("/sessions", h.handleCreateSession)
		r.Delete("/sessions/{id}", h.handleDeleteSession)
		r.Get("/stats", h.handleStats)
		r.Get("/skills", h.handleSkills)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	JSON(w, http.StatusOK, sessions)
}

// sessionRequest is the wire shape of a session to be logged. Duration
// arrives as a number, unlike the CLI where it is typed as text.
type sessionRequest struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Duration     int                   `json:"duration"`
	Instructor   string                `json:"instructor"`
	Location     string                `json:"location"`
	Weather      string                `json:"weather_conditions"`
	GeneralNotes string                `json:"general_notes"`
	Skills       []session.SkillRating `json:"skills"`
	FocusSkills  []string              `json:"focus_skills"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := validateBody("session", sessionSchema, body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req sessionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, err := session.NewWithMinimum(session.Input{
		ID:           req.ID,
		Date:         req.Date,
		Duration:     strconv.Itoa(req.Duration),
		Instructor:   req.Instructor,
		Location:     req.Location,
		Weather:      req.Weather,
		GeneralNotes: req.GeneralNotes,
		Skills:       req.Skills,
		FocusSkills:  req.FocusSkills,
	}, h.focusMin)
	if err != nil {
		var vErr *session.ValidationError
		if errors.As(err, &vErr) {
			Error(w, http.StatusBadRequest, vErr.Error())
			return
		}
		slog.Error("Failed to build session", "error", err)
		Error(w, http.StatusInternalServerError, "failed to build session")
		return
	}

	if err := h.repo.Create(r.Context(), sess); err != nil {
		slog.Error("Failed to store session", "error", err)
		Error(w, http.StatusInternalServerError, "failed to store session")
		return
	}

	slog.Info("Session logged", "id", sess.ID, "date", sess.Date)
	JSON(w, http.StatusCreated, sess)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			Error(w, http.StatusNotFound, "session not found")
			return
		}
		slog.Error("Failed to delete session", "error", err, "id", id)
		Error(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statsResponse bundles every aggregate the dashboard needs in one call.
type statsResponse struct {
	TotalSessions  int                   `json:"total_sessions"`
	TotalHours     float64               `json:"total_hours"`
	OverallAverage float64               `json:"overall_average"`
	MeanRating     float64               `json:"mean_rating"`
	Improving      bool                  `json:"improving"`
	Series         []stats.Point         `json:"series"`
	Skills         []stats.SkillStanding `json:"skills"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	resp := statsResponse{
		TotalSessions: len(sessions),
		TotalHours:    stats.TotalHours(sessions),
	}
	if resp.OverallAverage, err = stats.OverallAverage(sessions); err == nil {
		resp.MeanRating, err = stats.MeanRating(sessions)
	}
	var trend stats.Trend
	if err == nil {
		trend, err = stats.TrendSignal(sessions)
	}
	if err == nil {
		resp.Series, err = stats.Series(sessions, stats.DefaultSeriesLimit)
	}
	if err == nil {
		resp.Skills, err = stats.Ranked(sessions)
	}
	if err != nil {
		var invErr *stats.InvalidDataError
		if errors.As(err, &invErr) {
			slog.Error("Stored session has an out-of-range rating",
				"session", invErr.SessionID, "skill", invErr.Skill, "rating", invErr.Rating)
			Error(w, http.StatusUnprocessableEntity, invErr.Error())
			return
		}
		slog.Error("Failed to aggregate stats", "error", err)
		Error(w, http.StatusInternalServerError, "failed to aggregate stats")
		return
	}
	resp.Improving = trend.Improving

	JSON(w, http.StatusOK, resp)
}

// skillsResponse lists the practice catalog as sectioned and flat views.
type skillsResponse struct {
	Sections     []catalog.Section `json:"sections"`
	Skills       []string          `json:"skills"`
	ProblemAreas []string          `json:"problem_areas"`
}

func (h *Handler) handleSkills(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, skillsResponse{
		Sections:     catalog.Sections(),
		Skills:       catalog.Skills(),
		ProblemAreas: catalog.ProblemAreas(),
	})
}
