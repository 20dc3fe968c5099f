package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/api/handlers"
	"github.com/wowecon/ahtracker/internal/store"
)

// failingStore wraps the memory store with a failing Ping.
type failingStore struct {
	*store.MemoryStore
}

func (*failingStore) Ping(context.Context) error {
	return context.DeadlineExceeded
}

func TestHealthHandler_Healthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(store.NewMemoryStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Healthz(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHealthHandler_Readyz(t *testing.T) {
	t.Parallel()

	t.Run("store reachable", func(t *testing.T) {
		t.Parallel()

		h := handlers.NewHealthHandler(store.NewMemoryStore())

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Readyz(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ready"`)
	})

	t.Run("store unreachable", func(t *testing.T) {
		t.Parallel()

		h := handlers.NewHealthHandler(&failingStore{store.NewMemoryStore()})

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Readyz(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unavailable"`)
	})
}
