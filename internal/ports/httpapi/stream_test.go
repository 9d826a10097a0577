package httpapi

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blitz/internal/app"
	"blitz/internal/config"
)

func TestStreamDeliversSnapshotEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := app.NewService(app.NewRegistry(), nil, rand.New(rand.NewSource(1)))
	cfg := &config.ServerConfig{Addr: ":0", DefaultJokers: 2, ShutdownGraceSeconds: 1}
	router := NewRouter(service, cfg, nil)

	require.NoError(t, service.CreateGame("g1", "alice", 0, 1))

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = service.Join("g1", "bob")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/stream/g1/alice", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "), "body = %q", body)
	assert.True(t, strings.HasSuffix(body, "\n\n"), "body = %q", body)
	assert.Contains(t, body, `"type":"update_game"`)
	assert.Contains(t, body, `"bob"`)
}

func TestStreamRejectsUnknownGameAndPlayer(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/stream/nope/alice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w2 := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"game_id": "g1", "user_name": "alice", "number_of_decks": 1,
	})
	require.Equal(t, http.StatusCreated, w2.Code)

	req = httptest.NewRequest(http.MethodGet, "/stream/g1/mallory", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
