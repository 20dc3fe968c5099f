package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/web"
)

func TestRegister_ServesSearchPage(t *testing.T) {
	t.Parallel()

	e := echo.New()
	web.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Anniversary Realm Auction Prices")
	assert.Contains(t, body, "/api/v1/search")
	assert.Contains(t, body, "/api/v1/realms")
	assert.Contains(t, body, "formatGold")
}
