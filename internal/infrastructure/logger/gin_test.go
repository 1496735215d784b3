package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findEntry(t *testing.T, recorded *observer.ObservedLogs, msg string) observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == msg {
			return entry
		}
	}
	t.Fatalf("no %q entry logged", msg)
	return observer.LoggedEntry{}
}

func newObservedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	return router, recorded
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"orders": []string{}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("User-Agent", "freshline-app/1.0")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	entry := findEntry(t, recorded, "request completed")
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	keys := make(map[string]zapcore.Field)
	for _, field := range entry.Context {
		keys[field.Key] = field
	}
	for _, want := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
		assert.Contains(t, keys, want)
	}
	assert.Equal(t, "freshline-app/1.0", keys["user_agent"].String)
}

func TestGinMiddleware_CarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ginRequestIDKey, "req-789")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	entry := findEntry(t, recorded, "request completed")
	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "req-789", field.String)
		}
	}
	assert.True(t, found)
}

func TestGinMiddleware_StatusLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"2xx logs info", http.StatusOK, zapcore.InfoLevel},
		{"4xx logs warn", http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{"5xx logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, recorded := newObservedRouter(zapcore.InfoLevel)
			router.GET("/orders", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{})
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

			entry := findEntry(t, recorded, "request completed")
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestGinMiddleware_LogsQuery(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=PENDING&page=1", nil))

	entry := findEntry(t, recorded, "request completed")
	found := false
	for _, field := range entry.Context {
		if field.Key == "query" {
			found = true
			assert.Contains(t, field.String, "status=PENDING")
		}
	}
	assert.True(t, found)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entry := findEntry(t, recorded, "panic recovered")
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestGetGinLogger(t *testing.T) {
	router, _ := newObservedRouter(zapcore.InfoLevel)

	var inHandler *zap.Logger
	router.GET("/orders", func(c *gin.Context) {
		inHandler = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.NotNil(t, inHandler)
}

func TestGetGinLogger_Unseeded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var inHandler *zap.Logger
	router := gin.New()
	router.GET("/orders", func(c *gin.Context) {
		inHandler = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	// No-op logger, never nil
	require.NotNil(t, inHandler)
	assert.NotPanics(t, func() {
		inHandler.Info("ignored")
	})
}
