package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite открывает базу SQLite и применяет AutoMigrate к переданным моделям.
//
// Параметры:
//   - dbPath: путь к файлу базы (или DSN вида file:...)
//   - dst: модели gorm для миграции
//
// Возвращает:
//   - *gorm.DB: соединение
//   - error: ошибка подключения или миграции
func NewSQLite(dbPath string, dst ...any) (*gorm.DB, error) {
	conn, connErr := connectSQLite(dbPath)
	if connErr != nil {
		return nil, fmt.Errorf("init database error: %w", connErr)
	}
	if migrateErr := conn.AutoMigrate(dst...); migrateErr != nil {
		return nil, fmt.Errorf("migrate database error: %w", migrateErr)
	}
	return conn, nil
}

// sqliteLockParams параметры драйвера: ждать снятия блокировки до 5s и брать
// блокировку записи в начале транзакции.
const sqliteLockParams = "_busy_timeout=5000&_txlock=immediate"

func connectSQLite(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(withLockParams(dbPath)), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database with path %s error: %w", dbPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db error: %w", err)
	}
	// SQLite допускает одного писателя, запросы выстраиваются в очередь пула.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func withLockParams(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteLockParams
	}
	return dsn + "?" + sqliteLockParams
}
