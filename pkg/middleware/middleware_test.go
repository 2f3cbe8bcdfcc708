package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestFaceValueResolver(t *testing.T) {
	var r SessionResolver = FaceValueResolver{}

	id, err := r.Resolve(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Equal(t, "abc-123", id)

	_, err = r.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingSession)
}

func TestRequestID_Generated(t *testing.T) {
	g := gin.New()
	g.Use(RequestID())
	var seen string
	g.GET("/", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rw.Header().Get(RequestIDHeader)
	require.Equal(t, seen, got)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
}

func TestRequestID_Echoed(t *testing.T) {
	g := gin.New()
	g.Use(RequestID())
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, "caller-id", rw.Header().Get(RequestIDHeader))
}

func TestRequestLogger_OmitsQuery(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("info")
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	g := gin.New()
	g.Use(RequestID(), RequestLogger())
	g.GET("/api/saved-ideas", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/saved-ideas?sessionId=secret", nil))

	out := buf.String()
	require.Contains(t, out, "/api/saved-ideas")
	require.Contains(t, out, "418")
	require.NotContains(t, out, "secret")
}

func TestCORS(t *testing.T) {
	g := gin.New()
	g.Use(CORS("https://app.example"))
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "https://app.example", rw.Header().Get("Access-Control-Allow-Origin"))

	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusNoContent, rw.Code)
}

func TestCORS_DefaultsToAnyOrigin(t *testing.T) {
	g := gin.New()
	g.Use(CORS(""))
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))
}
