// Package app собирает зависимости сервиса и управляет жизненным циклом http сервера.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/screws/internal/backup"
	"github.com/fsdevblog/screws/internal/config"
	"github.com/fsdevblog/screws/internal/controllers"
	"github.com/fsdevblog/screws/internal/controllers/middlewares"
	"github.com/fsdevblog/screws/internal/db"
	"github.com/fsdevblog/screws/internal/metrics"
	"github.com/fsdevblog/screws/internal/preview"
	"github.com/fsdevblog/screws/internal/ratelimit"
	"github.com/fsdevblog/screws/internal/repositories/sql"
	"github.com/fsdevblog/screws/internal/services"
	"github.com/fsdevblog/screws/internal/tokens"
)

const (
	readHeaderTimeout = 5 * time.Second
	initTimeout       = 30 * time.Second

	// Исходящие запросы превью и unscrew на весь процесс.
	previewFetchesPerSecond = 20
	previewFetchBurst       = 40
)

type App struct {
	config   *config.Config
	logger   *zap.Logger
	services *services.Services
	router   *gin.Engine
	closers  []func() error
}

// New собирает приложение.
//
// Параметры:
//   - ctx: контекст инициализации (подключения к хранилищу, redis, JWKS)
//   - conf: конфигурация
//   - logger: логгер
//
// Возвращает:
//   - *App: приложение
//   - error: ошибка инициализации любой из зависимостей
func New(ctx context.Context, conf *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	a := &App{config: conf, logger: logger}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

func (a *App) init(ctx context.Context) error {
	policy, err := config.LoadPolicy(a.config.PolicyFile)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	m := metrics.New()

	fetcher, err := preview.New(a.logger,
		preview.WithOnFetch(m.PreviewFetched),
		preview.WithOutboundLimit(previewFetchesPerSecond, previewFetchBurst),
	)
	if err != nil {
		return fmt.Errorf("init preview fetcher: %w", err)
	}
	a.closers = append(a.closers, func() error {
		fetcher.Close()
		return nil
	})

	uploader, err := a.initUploader(ctx)
	if err != nil {
		return err
	}

	svc, err := a.initServices(ctx, services.Deps{
		Policy:              policy,
		Fetcher:             fetcher,
		Uploader:            uploader,
		DeleteFlagThreshold: a.config.DeleteFlagThreshold,
		URLOptions: []func(*services.URLServiceOptions){
			func(o *services.URLServiceOptions) {
				o.BaseURL = a.config.BaseURL.String()
				o.UseFullWords = a.config.UseFullWords
				o.PreviewTimeout = a.config.PreviewTimeout
			},
		},
		Logger: a.logger,
	})
	if err != nil {
		return err
	}
	a.services = svc

	limiters, err := a.initLimiters(ctx)
	if err != nil {
		return err
	}

	verifier, err := a.initVerifier(ctx)
	if err != nil {
		return err
	}

	a.router = controllers.SetupRouter(controllers.RouterParams{
		URLService:   svc.URLService,
		AdminService: svc.AdminService,
		PingService:  svc.PingService,
		Verifier:     verifier,
		Limiters:     limiters,
		Metrics:      m,
		Logger:       a.logger,
	})
	return nil
}

// initServices создает подключение к хранилищу и возвращает сервисный слой приложения.
func (a *App) initServices(ctx context.Context, deps services.Deps) (*services.Services, error) {
	sType := db.StorageType(a.config.StorageType())

	conn, err := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  sType,
		PostgresDSN:  &a.config.DatabaseDSN,
		SqliteDBPath: &a.config.SqlitePath,
		SqliteModels: []any{&sql.URLRow{}, &sql.FlagRow{}},
		Logger:       a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	switch c := conn.(type) {
	case *pgxpool.Pool:
		a.closers = append(a.closers, func() error {
			c.Close()
			return nil
		})
	case *gorm.DB:
		a.closers = append(a.closers, func() error {
			sqlDB, dbErr := c.DB()
			if dbErr != nil {
				return fmt.Errorf("get sqlite handle: %w", dbErr)
			}
			return sqlDB.Close() //nolint:wrapcheck
		})
	}

	svc, err := services.Factory(conn, sType, deps)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	a.logger.Info("storage ready", zap.String("type", string(sType)))
	return svc, nil
}

// initLimiters лимитеры в redis, если он задан, иначе в памяти процесса.
func (a *App) initLimiters(ctx context.Context) (controllers.Limiters, error) {
	settings := ratelimit.Settings{Max: a.config.RateLimitMax, Window: a.config.RateLimitWindow}

	if a.config.RedisAddr == "" {
		return controllers.Limiters{
			Password: ratelimit.NewMemoryLimiter("password", settings),
			Create:   ratelimit.NewMemoryLimiter("create", settings),
			Unscrew:  ratelimit.NewMemoryLimiter("unscrew", settings),
		}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: a.config.RedisAddr})
	a.closers = append(a.closers, client.Close)
	if err := client.Ping(ctx).Err(); err != nil {
		return controllers.Limiters{}, fmt.Errorf("ping redis %s: %w", a.config.RedisAddr, err)
	}

	return controllers.Limiters{
		Password: ratelimit.NewRedisLimiter(client, "password", settings),
		Create:   ratelimit.NewRedisLimiter(client, "create", settings),
		Unscrew:  ratelimit.NewRedisLimiter(client, "unscrew", settings),
	}, nil
}

// initVerifier JWKS приоритетнее общего секрета. Без обоих админка закрыта.
func (a *App) initVerifier(ctx context.Context) (middlewares.TokenVerifier, error) {
	switch {
	case a.config.AdminJWKSURL != "":
		v, err := tokens.NewJWKSVerifier(ctx, a.config.AdminJWKSURL, a.config.AdminSubjects, a.logger)
		if err != nil {
			return nil, fmt.Errorf("init jwks verifier: %w", err)
		}
		return v, nil
	case a.config.AdminJWTSecret != "":
		return tokens.NewHMACVerifier([]byte(a.config.AdminJWTSecret), a.config.AdminSubjects), nil
	default:
		a.logger.Warn("admin identity provider is not configured, admin api is disabled")
		return nil, nil //nolint:nilnil
	}
}

func (a *App) initUploader(ctx context.Context) (services.BackupUploader, error) {
	s3conf := a.config.BackupS3
	if s3conf.Bucket == "" {
		return nil, nil //nolint:nilnil
	}

	client, err := backup.NewS3Client(ctx, backup.S3Config{
		Bucket:    s3conf.Bucket,
		Region:    s3conf.Region,
		Endpoint:  s3conf.Endpoint,
		AccessKey: s3conf.AccessKey,
		SecretKey: s3conf.SecretKey,
		Prefix:    s3conf.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return backup.NewS3Uploader(client, s3conf.Bucket, s3conf.Prefix, a.logger), nil
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает web сервер и блокируется до отмены ctx или ошибки сервера.
// После остановки освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	a.logger.Info("server started", zap.String("address", a.config.ServerAddress),
		zap.String("base_url", a.config.BaseURL.String()))

	var serverErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown command received")
	case serverErr = <-errChan:
		a.logger.Error("server error", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if serverErr != nil {
		return fmt.Errorf("run server: %w", serverErr)
	}
	return nil
}

// Close освобождает ресурсы в обратном порядке. Повторный вызов ничего не делает.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
