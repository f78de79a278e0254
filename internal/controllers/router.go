package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/controllers/middlewares"
	"github.com/fsdevblog/screws/internal/metrics"
	"github.com/fsdevblog/screws/internal/ratelimit"
)

// Limiters лимиты частоты запросов. Каждое поле отдельное пространство ключей, nil отключает лимит.
type Limiters struct {
	// Password попытки ввода пароля.
	Password ratelimit.Limiter
	// Create создание ссылок.
	Create ratelimit.Limiter
	// Unscrew запросы к внешним сайтам.
	Unscrew ratelimit.Limiter
}

// RouterParams зависимости роутера.
type RouterParams struct {
	URLService   URLService
	AdminService AdminService
	PingService  ConnectionChecker
	Verifier     middlewares.TokenVerifier
	Limiters     Limiters
	// Metrics nil отключает /metrics и счетчики.
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// SetupRouter собирает gin.Engine со всеми маршрутами сервиса.
func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(gin.Recovery())

	var recorder Recorder = nopRecorder{}
	if params.Metrics != nil {
		recorder = params.Metrics
		r.Use(params.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(params.Metrics.Handler()))
	}
	r.Use(middlewares.GzipMiddleware())

	urlController := NewURLController(params.URLService, recorder)
	toolsController := NewToolsController(params.URLService)
	adminController := NewAdminController(params.AdminService, recorder)
	pingController := NewPingController(params.PingService)

	limit := func(l ratelimit.Limiter, scope string, counts func(*gin.Context) bool) gin.HandlerFunc {
		return middlewares.RateLimitMiddleware(middlewares.RateLimitParams{
			Limiter:   l,
			Scope:     scope,
			Counts:    counts,
			OnLimited: recorder.RateLimited,
		})
	}

	r.GET("/ping", pingController.Ping)
	r.GET("/:code", urlController.Redirect)

	api := r.Group("/api")

	api.POST("/url", limit(params.Limiters.Create, "create", nil), urlController.Create)
	api.GET("/url/:code", urlController.Lookup)
	api.POST("/url/:code", limit(params.Limiters.Password, "password", middlewares.HasPassword), urlController.Lookup)
	api.GET("/url/:code/qr", urlController.QR)

	api.POST("/tools/clean", toolsController.Clean)
	api.POST("/tools/unscrew", limit(params.Limiters.Unscrew, "unscrew", nil), toolsController.Unscrew)

	api.POST("/preferences/skip-confirmation", urlController.SkipConfirmation)
	api.DELETE("/preferences/skip-confirmation", urlController.RequireConfirmation)

	admin := api.Group("/admin", middlewares.AdminAuthMiddleware(params.Verifier))
	admin.GET("", adminController.Stats)
	admin.POST("", adminController.Search)
	admin.DELETE("", adminController.Delete)
	admin.GET("/backup", adminController.Backup)

	return r
}
