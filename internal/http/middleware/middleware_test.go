package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("admin", "secret")
	require.NoError(t, err)

	sub, err := parseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	_, err = parseToken(token, "other")
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(JWTMiddleware("secret"))
	r.GET("/me", func(c *gin.Context) {
		admin, ok := GetCurrentAdmin(c)
		require.True(t, ok)
		c.String(http.StatusOK, admin.Username)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := GenerateJWT("editor", "secret")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editor", w.Body.String())
}

func TestAuthenticate(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NoError(t, Authenticate("admin", hash, "admin", "hunter2"))
	assert.ErrorIs(t, Authenticate("admin", hash, "admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, Authenticate("admin", hash, "root", "hunter2"), ErrInvalidCredentials)
}

func TestThemeCookie(t *testing.T) {
	r := gin.New()
	r.Use(Theme())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, CurrentTheme(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, ThemeLight, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: ThemeDark})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, ThemeDark, w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"status":404`)
}
