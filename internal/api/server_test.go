package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/marketing-analytics-api/internal/api/handler"
	"github.com/vfg2006/marketing-analytics-api/internal/config"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{
			Host:               "localhost",
			Port:               "0",
			UploadMaxBytes:     1 << 20,
			CorsAllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func TestNewHandler_MiddlewareChain(t *testing.T) {
	h := NewHandler(testConfig(), campaigning.NewService(), connecting.NewService(), handler.CronJobServices{})

	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set(log.CorrelationIDHeader, "req-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-123", rec.Header().Get(log.CorrelationIDHeader))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestNewHandler_Preflight(t *testing.T) {
	h := NewHandler(testConfig(), campaigning.NewService(), connecting.NewService(), handler.CronJobServices{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/campaigns/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestNew_Addr(t *testing.T) {
	srv, err := New(testConfig(), campaigning.NewService(), connecting.NewService(), nil)

	require.NoError(t, err)
	assert.Equal(t, "localhost:0", srv.httpServer.Addr)
}
