package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/utils"
	"github.com/iliyamo/fyyur/internal/view"
)

func TestNewRegistersSiteRoutes(t *testing.T) {
	tokens := utils.NewFormTokens("secret", time.Hour)
	// Nil pools are never touched: no route is executed against the stores here.
	h := handler.New(repository.NewVenueRepo(nil), repository.NewArtistRepo(nil), repository.NewShowRepo(nil), tokens, nil, nil)
	renderer, err := view.New()
	require.NoError(t, err)

	e := New(Options{Handler: h, Renderer: renderer, Tokens: tokens, RateLimit: config.RateLimitConfig{Enabled: true}})

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /", "GET /healthz",
		"GET /venues", "POST /venues/search", "GET /venues/create", "POST /venues/create",
		"GET /venues/:id", "DELETE /venues/:id", "GET /venues/:id/edit", "POST /venues/:id/edit",
		"GET /artists", "POST /artists/search", "GET /artists/create", "POST /artists/create",
		"GET /artists/:id", "GET /artists/:id/edit", "POST /artists/:id/edit",
		"GET /shows", "GET /shows/create", "POST /shows/create",
	} {
		assert.True(t, got[want], want)
	}
	assert.False(t, got["DELETE /artists/:id"])

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artists/create", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRejectedDeleteAnswersJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tokens := utils.NewFormTokens("secret", time.Hour)
	// The rate limiter and the token check reject before any store is used.
	h := handler.New(repository.NewVenueRepo(nil), repository.NewArtistRepo(nil), repository.NewShowRepo(nil), tokens, nil, nil)
	renderer, err := view.New()
	require.NoError(t, err)
	e := New(Options{
		Handler:  h,
		Renderer: renderer,
		Tokens:   tokens,
		RateLimit: config.RateLimitConfig{
			Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Hour, Prefix: "rl",
		},
		Redis: rdb,
	})

	del := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/venues/1", nil))
		return rec
	}

	rec := del()
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), `"success":false`)

	rec = del()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
