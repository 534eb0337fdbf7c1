package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoomsHandler_Defaults(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var rooms []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Equal(t, []string{"General", "Tech", "Random"}, rooms)
}

func TestCreateRoomHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "created", body: `{"name":"Gaming"}`, wantStatus: http.StatusCreated},
		{name: "trims whitespace", body: `{"name":"  Music "}`, wantStatus: http.StatusCreated},
		{name: "empty name", body: `{"name":"   "}`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{name`, wantStatus: http.StatusBadRequest},
		{name: "duplicate", body: `{"name":"General"}`, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := setupTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateRoomHandler_AppearsExactlyOnce(t *testing.T) {
	engine, b := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"name":"Gaming"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Gaming", resp["name"])

	req = httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"name":"Gaming"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	count := 0
	for _, name := range b.Rooms() {
		if name == "Gaming" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestHealthCheck(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Running", w.Body.String())
}
