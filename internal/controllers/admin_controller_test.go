package controllers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/controllers/middlewares"
	"github.com/fsdevblog/screws/internal/controllers/mocksctrl"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/moderation"
	"github.com/fsdevblog/screws/internal/services"
	"github.com/fsdevblog/screws/internal/tokens"
)

var adminSecret = []byte("admin-secret") //nolint:gochecknoglobals

type AdminControllerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	adminService *mocksctrl.MockAdminService
	recorder     *mocksctrl.MockRecorder
	router       *gin.Engine
	token        string
}

func (s *AdminControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.adminService = mocksctrl.NewMockAdminService(s.ctrl)
	s.recorder = mocksctrl.NewMockRecorder(s.ctrl)

	s.router = gin.New()
	admin := s.router.Group("/api/admin", middlewares.AdminAuthMiddleware(
		tokens.NewHMACVerifier(adminSecret, []string{"mod-a", "mod-b"}),
	))
	controller := NewAdminController(s.adminService, s.recorder)
	admin.GET("", controller.Stats)
	admin.POST("", controller.Search)
	admin.DELETE("", controller.Delete)
	admin.GET("/backup", controller.Backup)

	token, err := tokens.GenerateAdminJWT("mod-a", "Alice", time.Hour, adminSecret)
	s.Require().NoError(err)
	s.token = token
}

func (s *AdminControllerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AdminControllerSuite) authorized(fields requestFields) *http.Response {
	fields.Header = http.Header{"Authorization": []string{"Bearer " + s.token}}
	return makeRequest(s.T(), s.router, fields)
}

func (s *AdminControllerSuite) TestAuth() {
	expired, err := tokens.GenerateAdminJWT("mod-a", "", -time.Minute, adminSecret)
	s.Require().NoError(err)
	stranger, err := tokens.GenerateAdminJWT("someone", "", time.Hour, adminSecret)
	s.Require().NoError(err)

	tests := []struct {
		name       string
		header     http.Header
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: http.Header{"Authorization": []string{"Bearer nope"}}, wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: http.Header{"Authorization": []string{"Basic " + s.token}}, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: http.Header{"Authorization": []string{"Bearer " + expired}}, wantStatus: http.StatusUnauthorized},
		{name: "unknown subject", header: http.Header{"Authorization": []string{"Bearer " + stranger}}, wantStatus: http.StatusForbidden},
		{
			name:       "cookie",
			header:     http.Header{"Cookie": []string{middlewares.AdminCookieName + "=" + s.token}},
			wantStatus: http.StatusOK,
		},
	}

	s.adminService.EXPECT().Stats(gomock.Any()).Return(&models.CollectionStats{OK: true, Name: "urls"}, nil)

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := makeRequest(s.T(), s.router, requestFields{
				Method: http.MethodGet,
				URL:    "/api/admin",
				Header: tt.header,
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
}

func (s *AdminControllerSuite) TestAuth_NotConfigured() {
	router := gin.New()
	router.GET("/api/admin", middlewares.AdminAuthMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	res := makeRequest(s.T(), router, requestFields{
		Method: http.MethodGet,
		URL:    "/api/admin",
		Header: http.Header{"Authorization": []string{"Bearer " + s.token}},
	})
	defer res.Body.Close()
	s.Equal(http.StatusUnauthorized, res.StatusCode)
}

func (s *AdminControllerSuite) TestSearch() {
	hash := "hash"
	s.adminService.EXPECT().Search(gomock.Any(), "longUrl", "example").Return([]models.URL{
		{Code: "b", LongURL: "https://example.com/b", Password: &hash, Flags: []string{"mod-b"}},
		{Code: "a", LongURL: "https://example.com/a"},
	}, nil)
	s.adminService.EXPECT().Search(gomock.Any(), "code", "zzz").Return(nil, services.ErrRecordNotFound)
	s.adminService.EXPECT().Search(gomock.Any(), "color", "red").
		Return(nil, &services.ValidationError{Reason: "unsupported field"})

	res := s.authorized(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/admin",
		Body:        strings.NewReader(`{"field":"longUrl","query":"example"}`),
		ContentType: "application/json",
	})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	body, err := readBody(res.Body, false)
	s.Require().NoError(err)
	var got []models.ClientURL
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Require().Len(got, 2)
	s.Equal("b", got[0].Code)
	s.True(got[0].Password)
	s.Equal(1, got[0].Flags)
	s.NotContains(string(body), "hash")

	empty := s.authorized(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/admin",
		Body:        strings.NewReader(`{"field":"code","query":"zzz"}`),
		ContentType: "application/json",
	})
	defer empty.Body.Close()
	s.Equal(http.StatusNotFound, empty.StatusCode)

	invalid := s.authorized(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/admin",
		Body:        strings.NewReader(`{"field":"color","query":"red"}`),
		ContentType: "application/json",
	})
	defer invalid.Body.Close()
	s.Equal(http.StatusUnprocessableEntity, invalid.StatusCode)
}

func (s *AdminControllerSuite) TestDelete() {
	s.adminService.EXPECT().Delete(gomock.Any(), []string{"a", "b"}, "mod-a").Return(&moderation.Result{
		Flagged: []string{"a"},
		Deleted: []string{"b"},
	}, nil)
	s.recorder.EXPECT().ModerationOutcome("flagged", 1)
	s.recorder.EXPECT().ModerationOutcome("deleted", 1)

	res := s.authorized(requestFields{
		Method:      http.MethodDelete,
		URL:         "/api/admin",
		Body:        strings.NewReader(`{"codes":["a","b"]}`),
		ContentType: "application/json",
	})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	body, err := readBody(res.Body, false)
	s.Require().NoError(err)
	var got DeleteResponse
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal(DeleteResponse{Success: true, Flagged: []string{"a"}, Deleted: []string{"b"}}, got)
}

func (s *AdminControllerSuite) TestBackup() {
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.adminService.EXPECT().Backup(gomock.Any(), "Alice").Return(&models.Backup{
		Date: date,
		URLs: []models.URL{{Code: "a", LongURL: "https://example.com"}},
	}, "backups/screws-backup-20240501T100000Z.json", nil)

	res := s.authorized(requestFields{Method: http.MethodGet, URL: "/api/admin/backup"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal(`attachment; filename="screws-backup-20240501T100000Z.json"`, res.Header.Get("Content-Disposition"))
	s.Equal("backups/screws-backup-20240501T100000Z.json", res.Header.Get("X-Backup-Key"))

	body, err := readBody(res.Body, false)
	s.Require().NoError(err)
	var got models.Backup
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Len(got.URLs, 1)
	s.True(date.Equal(got.Date))
}

func (s *AdminControllerSuite) TestStats_StoreDown() {
	s.adminService.EXPECT().Stats(gomock.Any()).Return(nil, services.ErrStoreUnavailable)

	res := s.authorized(requestFields{Method: http.MethodGet, URL: "/api/admin"})
	defer res.Body.Close()
	s.Equal(http.StatusServiceUnavailable, res.StatusCode)
}

func TestAdminControllerSuite(t *testing.T) {
	suite.Run(t, new(AdminControllerSuite))
}

// TestSetupRouter_AdminRoutesRequireAuth проверяет, что админка собрана за middleware.
func TestSetupRouter_AdminRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(RouterParams{Logger: zap.NewNop()})

	for _, r := range []requestFields{
		{Method: http.MethodGet, URL: "/api/admin"},
		{Method: http.MethodPost, URL: "/api/admin"},
		{Method: http.MethodDelete, URL: "/api/admin"},
		{Method: http.MethodGet, URL: "/api/admin/backup"},
	} {
		res := makeRequest(t, router, r)
		_ = res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: status %d, want 401", r.Method, r.URL, res.StatusCode)
		}
	}
}
