package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/interfaces/http/middleware"
	"github.com/swarakshak/vidhaan/internal/testutil"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

func newRouter(log *testutil.MockLogger, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogging(log, middleware.DefaultLoggingConfig()))
	r.Use(middleware.ErrorHandler(log))
	register(r)
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	log := testutil.NewMockLogger()
	var seen string
	r := newRouter(log, func(r *gin.Engine) {
		r.GET("/ping", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.String(http.StatusOK, "pong")
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDReusesIncomingHeader(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newRouter(log, func(r *gin.Engine) {
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied", w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestLoggingLevels(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newRouter(log, func(r *gin.Engine) {
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
		r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	})

	for _, path := range []string{"/ok", "/bad", "/healthz"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.True(t, log.HasMessage("info", "request completed"))
	assert.True(t, log.HasMessage("warn", "request rejected"))
	// Health probes are skipped entirely.
	assert.Len(t, log.GetMessages(), 2)
}

func TestRecoveryConvertsPanic(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newRouter(log, func(r *gin.Engine) {
		r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrCodeInternal))
	assert.True(t, log.HasMessage("error", "panic recovered"))
}

func TestErrorHandlerMapsAppError(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newRouter(log, func(r *gin.Engine) {
		r.GET("/missing", func(c *gin.Context) {
			c.Error(errors.New(errors.ErrCodeNotFound, "session not found"))
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session not found")
}
