package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/config"
	"github.com/fsdevblog/screws/internal/tokens"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddress:       "localhost:0",
		BaseURL:             &url.URL{Scheme: "https", Host: "scr.ws"},
		AdminJWTSecret:      "secret",
		AdminSubjects:       []string{"mod-a"},
		DeleteFlagThreshold: 2,
		UseFullWords:        false,
		PreviewTimeout:      100 * time.Millisecond,
		RateLimitMax:        5,
		RateLimitWindow:     2 * time.Minute,
		ShutdownTimeout:     time.Second,
	}
}

func do(t *testing.T, h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApp_URLLifecycle(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	h := a.Handler()

	w := do(t, h, http.MethodPost, "/api/url", `{"longUrl":"example.invalid/page?utm_source=x","code":"docs"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "https://example.invalid/page?utm_source=x", created["longUrl"])
	assert.Equal(t, "https://scr.ws/docs", created["shortUrl"])

	w = do(t, h, http.MethodPost, "/api/url", `{"longUrl":"https://other.invalid","code":"docs"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodGet, "/docs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isDirty":true`)

	w = do(t, h, http.MethodGet, "/docs", "", http.Header{"Cookie": []string{"skip_redirect_confirmation=true"}})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://example.invalid/page?utm_source=x", w.Header().Get("Location"))

	w = do(t, h, http.MethodGet, "/api/url/docs/qr", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = do(t, h, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "screws_")
}

func TestApp_PasswordAttemptsLimited(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	h := a.Handler()

	w := do(t, h, http.MethodPost, "/api/url",
		`{"longUrl":"https://example.invalid","code":"locked","password":"right"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for range 5 {
		w = do(t, h, http.MethodPost, "/api/url/locked", `{"password":"wrong"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w = do(t, h, http.MethodPost, "/api/url/locked", `{"password":"right"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Запросы без пароля не ограничиваются.
	w = do(t, h, http.MethodGet, "/api/url/locked", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApp_AdminModeration(t *testing.T) {
	conf := testConfig()
	conf.AdminSubjects = []string{"mod-a", "mod-b"}

	a, err := New(context.Background(), conf, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	h := a.Handler()

	w := do(t, h, http.MethodPost, "/api/url", `{"longUrl":"https://spam.invalid","code":"spam"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	bearer := func(sub string) http.Header {
		token, tokenErr := tokens.GenerateAdminJWT(sub, "", time.Hour, []byte(conf.AdminJWTSecret))
		require.NoError(t, tokenErr)
		return http.Header{"Authorization": []string{"Bearer " + token}}
	}

	w = do(t, h, http.MethodDelete, "/api/admin", `{"codes":["spam"]}`, bearer("mod-a"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"flagged":["spam"],"deleted":[]}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/api/admin", `{"codes":["spam"]}`, bearer("mod-b"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"flagged":[],"deleted":["spam"]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/spam", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/admin", "", bearer("intruder"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApp_RedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	conf := testConfig()
	conf.RedisAddr = mr.Addr()

	a, err := New(context.Background(), conf, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	w := do(t, a.Handler(), http.MethodPost, "/api/url", `{"longUrl":"https://example.invalid"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, mr.Keys())
}

func TestApp_RedisUnavailable(t *testing.T) {
	conf := testConfig()
	conf.RedisAddr = "127.0.0.1:1"

	_, err := New(context.Background(), conf, zap.NewNop())
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()
	cancel()

	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
