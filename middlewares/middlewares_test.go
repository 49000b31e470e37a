package middlewares

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddlewareNoTokenPassesThroughAnonymous(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(nil))
	r.GET("/ping", func(c *gin.Context) {
		assert.Nil(t, UserFromContext(c))
		c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedTokens(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(nil))
	handled := false
	r.GET("/ping", func(c *gin.Context) { handled = true })

	cases := []string{
		"Basic dXNlcjpwYXNz",
		"Bearer not.a.token",
	}
	for _, auth := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", auth)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "auth %q", auth)
		assert.False(t, handled, "handler must not run for %q", auth)
	}
}

func TestRequestLoggerCorrelationId(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	r := gin.New()
	r.Use(RequestLogger(logger))
	var inHandler string
	r.GET("/ping", func(c *gin.Context) {
		inHandler, _ = utils.GetCorrelationIdFromContext(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})

	// Provided correlation id is kept.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "corr-123", rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "corr-123", inHandler)

	// Absent correlation id gets generated.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestRequestLoggerIncludesAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(&buf)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.Use(func(c *gin.Context) {
		ctx := utils.SetUserNameInContext(c.Request.Context(), "asha")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "asha", entry["user"])
}
