package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	r := chi.NewRouter()
	NewHandler(repo, session.DefaultMinFocusSkills).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func sessionBody(date string) map[string]any {
	return map[string]any{
		"date":     date,
		"duration": 60,
		"skills": []map[string]any{
			{"name": "Roundabouts", "rating": 3},
			{"name": "Junctions - observing", "rating": 4},
			{"name": "Moving off - safely", "rating": 5},
		},
		"focus_skills": []string{"Roundabouts", "Junctions - observing", "Moving off - safely"},
	}
}

func postSession(t *testing.T, srv *httptest.Server, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndListSessions(t *testing.T) {
	srv := newTestServer(t)

	resp := postSession(t, srv, sessionBody("2025-05-10"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created session.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-05-10", created.Date)
	assert.Equal(t, 3, created.Rating("Roundabouts"))

	listResp, err := http.Get(srv.URL + "/api/sessions")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listed []session.Session
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateSessionRejectsBadShape(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing date", func(m map[string]any) { delete(m, "date") }},
		{"malformed date", func(m map[string]any) { m["date"] = "10/05/2025" }},
		{"zero duration", func(m map[string]any) { m["duration"] = 0 }},
		{"string duration", func(m map[string]any) { m["duration"] = "sixty" }},
		{"rating above range", func(m map[string]any) {
			m["skills"] = []map[string]any{{"name": "Roundabouts", "rating": 6}}
		}},
		{"unknown field", func(m map[string]any) { m["unknown"] = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := sessionBody("2025-05-10")
			tt.mutate(body)
			resp := postSession(t, srv, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateSessionRejectsTooFewFocusSkills(t *testing.T) {
	srv := newTestServer(t)

	// Shape is valid JSON-wise, so rejection comes from the domain rules.
	body := sessionBody("2025-05-10")
	body["focus_skills"] = []string{"Roundabouts"}
	resp := postSession(t, srv, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)

	resp := postSession(t, srv, sessionBody("2025-05-10"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created session.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+created.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+created.ID, nil)
	require.NoError(t, err)
	delResp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, delResp2.StatusCode)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)

	for _, date := range []string{"2025-05-10", "2025-05-17"} {
		resp := postSession(t, srv, sessionBody(date))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got statsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalSessions)
	assert.Equal(t, 2.0, got.TotalHours)
	assert.Equal(t, 4.0, got.OverallAverage)
	assert.Len(t, got.Series, 2)
	assert.Equal(t, "Session 1", got.Series[0].Label)
}

func TestSkills(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/skills")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got skillsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.Sections)
	assert.Contains(t, got.Skills, "Roundabouts")
	assert.Contains(t, got.ProblemAreas, "Roundabouts")
}

func TestRemoteStoreAgainstServer(t *testing.T) {
	srv := newTestServer(t)
	remote := store.NewRemote(srv.URL)
	ctx := context.Background()

	require.NoError(t, remote.Ping(ctx))

	sess, err := session.New(session.Input{
		Date:     "2025-05-10",
		Duration: "45",
		Skills: []session.SkillRating{
			{Name: "Roundabouts", Rating: 3},
			{Name: "Controlled stop", Rating: 4},
			{Name: "Forward park", Rating: 2},
		},
		FocusSkills: []string{"Roundabouts", "Controlled stop", "Forward park"},
	})
	require.NoError(t, err)

	require.NoError(t, remote.Create(ctx, sess))

	listed, err := remote.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, sess.ID, listed[0].ID)
	assert.Equal(t, sess.Skills, listed[0].Skills)

	require.NoError(t, remote.Delete(ctx, sess.ID))
	assert.ErrorIs(t, remote.Delete(ctx, sess.ID), store.ErrNotFound)
}
