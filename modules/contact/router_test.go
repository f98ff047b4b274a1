package contact_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/ratelimit"
)

func TestRouter_ThrottlesPostOnly(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t)
	limiter, err := ratelimit.NewFixedWindow(ratelimit.NewMemoryStore(), 1, time.Minute)
	require.NoError(t, err)

	router := contact.Router(h, limiter)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, postJSON(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, postJSON(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Preflights from the same client are never throttled.
	preflight := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	preflight.RemoteAddr = "203.0.113.7:52000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, preflight)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_NoLimiter(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t)
	router := contact.Router(h, nil)

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, postJSON(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
