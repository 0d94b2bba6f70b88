package logger

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_ReusesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRequestID_Generated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestGetRequestID_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", GetRequestID(context.Background()))
}

func TestInitializeWithWriter_TeesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := InitializeWithWriter("production", &buf)
	require.NoError(t, err)

	Info(WithContext(context.Background(), "abc"), "order placed")
	_ = l.Sync()

	assert.Contains(t, buf.String(), `"msg":"order placed"`)
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
