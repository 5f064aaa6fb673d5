package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anilistbot/internal/auth"
	synchub "anilistbot/internal/sync"
	"anilistbot/internal/watchlist"
	"anilistbot/pkg/models"
)

type downStore struct{ watchlist.Store }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newTestRouter(store watchlist.Store) (*gin.Engine, auth.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := auth.TokenService{Secret: []byte("s"), Issuer: "anilistbot", Duration: time.Minute}
	return NewRouter(Deps{
		Store:   store,
		Backend: "memory",
		Hub:     synchub.NewHub(nil),
		Tokens:  tokens,
	}), tokens
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndReady(t *testing.T) {
	r, _ := newTestRouter(watchlist.NewMemoryStore())

	w := get(r, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, w.Body.String())

	w = get(r, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","store":"ok","ws_clients":0}`, w.Body.String())

	down, _ := newTestRouter(downStore{watchlist.NewMemoryStore()})
	w = get(down, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsExposed(t *testing.T) {
	r, _ := newTestRouter(watchlist.NewMemoryStore())
	w := get(r, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestWatchlistRoutes(t *testing.T) {
	store := watchlist.NewMemoryStore()
	r, tokens := newTestRouter(store)

	_, err := store.Add(context.Background(), models.WatchlistEntry{UserID: "42", AnimeID: 457, NameRomaji: "Mushishi", Link: "l"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/users/watchlist", "").Code)

	tok, _, err := tokens.Sign("42", "rin")
	require.NoError(t, err)
	w := get(r, "/users/watchlist", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = get(r, "/auth/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func wsURL(srv *httptest.Server, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func TestWatchlistEventsStayWithOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.TokenService{Secret: []byte("s"), Issuer: "anilistbot", Duration: time.Minute}
	hub := synchub.NewHub(nil)
	store := watchlist.Track(watchlist.NewMemoryStore(), "memory", hub)
	srv := httptest.NewServer(NewRouter(Deps{Store: store, Backend: "memory", Hub: hub, Tokens: tokens}))
	defer srv.Close()
	defer hub.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	tok, _, err := tokens.Sign("alice", "alice")
	require.NoError(t, err)
	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tok), nil)
	require.NoError(t, err)
	defer ws.Close()
	_, _, err = ws.ReadMessage() // welcome
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Stats().WSClients == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	_, err = store.Add(ctx, models.WatchlistEntry{UserID: "bob", AnimeID: 21, NameRomaji: "One Piece", Link: "l"})
	require.NoError(t, err)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err = ws.ReadMessage()
	require.Error(t, err, "alice must not see bob's events")

	// a timed-out read leaves the conn unusable, so dial again
	ws2, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tok), nil)
	require.NoError(t, err)
	defer ws2.Close()
	_, _, err = ws2.ReadMessage()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Stats().WSClients == 2 }, 2*time.Second, 10*time.Millisecond)

	_, err = store.Add(ctx, models.WatchlistEntry{UserID: "alice", AnimeID: 457, NameRomaji: "Mushishi", Link: "l"})
	require.NoError(t, err)
	require.NoError(t, ws2.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ws2.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"user_id":"alice"`)
	assert.Contains(t, string(msg), `"anime_id":457`)
}
