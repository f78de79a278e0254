package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/screws/internal/config"
	"github.com/fsdevblog/screws/internal/db"
	"github.com/fsdevblog/screws/internal/repositories/memstore"
	"github.com/fsdevblog/screws/internal/repositories/pg"
	"github.com/fsdevblog/screws/internal/repositories/sql"
)

// Services набор сервисов приложения.
type Services struct {
	URLService   *URLService
	AdminService *AdminService
	PingService  *PingService
}

// Deps зависимости сервисов, не связанные с хранилищем.
type Deps struct {
	Policy              *config.Policy
	Fetcher             PreviewFetcher
	Uploader            BackupUploader
	DeleteFlagThreshold int
	URLOptions          []func(*URLServiceOptions)
	Logger              *zap.Logger
}

// Factory создает сервисы поверх соединения с хранилищем.
//
// Параметры:
//   - conn: *pgxpool.Pool, *gorm.DB или *db.MemoryStorage
//   - sType: тип хранилища
//   - deps: остальные зависимости
//
// Возвращает:
//   - *Services: сервисы
//   - error: ошибка, если тип соединения не соответствует типу хранилища
func Factory(conn any, sType db.StorageType, deps Deps) (*Services, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	var repo URLRepository
	switch sType {
	case db.StorageTypePostgres:
		pool, ok := conn.(*pgxpool.Pool)
		if !ok {
			return nil, errors.New("invalid connection type. expected *pgxpool.Pool")
		}
		repo = pg.NewURLRepo(pool, deps.Logger)
	case db.StorageTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		repo = sql.NewURLRepo(gormDB, deps.Logger)
	case db.StorageTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		repo = memstore.NewURLRepo(store)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", sType)
	}
	return NewServices(repo, deps)
}

// NewServices создает сервисы поверх готового репозитория.
func NewServices(repo URLRepository, deps Deps) (*Services, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	policy := deps.Policy
	if policy == nil {
		policy = config.DefaultPolicy()
	}

	urlService, err := NewURLService(repo, deps.Fetcher, policy, deps.Logger, deps.URLOptions...)
	if err != nil {
		return nil, err
	}

	return &Services{
		URLService:   urlService,
		AdminService: NewAdminService(repo, deps.DeleteFlagThreshold, deps.Uploader, deps.Logger),
		PingService:  NewPingService(repo),
	}, nil
}
