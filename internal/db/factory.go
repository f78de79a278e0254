package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// StorageType тип хранилища.
type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

// FactoryConfig параметры подключения.
type FactoryConfig struct {
	StorageType  StorageType
	PostgresDSN  *string
	SqliteDBPath *string
	// SqliteModels модели gorm, к которым применяется AutoMigrate.
	SqliteModels []any
	Logger       *zap.Logger
}

// NewConnectionFactory открывает соединение с хранилищем выбранного типа.
// Возвращает *pgxpool.Pool, *gorm.DB или *MemoryStorage.
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch config.StorageType {
	case StorageTypePostgres:
		if config.PostgresDSN == nil {
			return nil, errors.New("postgres dsn is empty")
		}
		if err := MigratePostgres(*config.PostgresDSN, logger); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		pool, err := NewPostgresConnection(ctx, *config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}
		return pool, nil
	case StorageTypeSQLite:
		if config.SqliteDBPath == nil {
			return nil, errors.New("sqlite path is empty")
		}
		conn, err := NewSQLite(*config.SqliteDBPath, config.SqliteModels...)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
		return conn, nil
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}
