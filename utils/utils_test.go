package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN", true))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("", true))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("", false))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("loud", false))
}

func TestRunHealthChecks(t *testing.T) {
	status := RunHealthChecks(context.Background(), map[string]HealthCheck{
		"firestore": func(context.Context) error { return nil },
		"redis":     func(context.Context) error { return errors.New("refused") },
	}, zap.NewNop())

	assert.True(t, status.Services["firestore"])
	assert.False(t, status.Services["redis"])
	assert.False(t, status.Healthy())
	assert.Equal(t, status, GetHealthStatus())
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
}

func TestSlotValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	type body struct {
		Availability []string `json:"availability" binding:"dive,slot"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := map[string]int{
		`{"availability":["Mon 14:00-16:00","Tue 9:00-10:30"]}`: http.StatusOK,
		`{"availability":["Mon 16:00-14:00"]}`:                  http.StatusBadRequest,
		`{"availability":["whenever"]}`:                         http.StatusBadRequest,
	}
	for payload, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, payload)
	}
}

func TestCollectorIsSingleton(t *testing.T) {
	a := NewCollector(MetricsNamespace)
	b := NewCollector(MetricsNamespace)
	require.Same(t, a, b)

	a.MatchesConfirmed.Inc()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", a.Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studybuddy_matches_confirmed_total")
}
