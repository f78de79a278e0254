package repositories

import (
	"context"

	"github.com/fsdevblog/screws/internal/models"
)

// URLRepository контракт хранилища записей ссылок. Реализации: memstore, sql (sqlite), pg.
//
// Insert атомарно проверяет уникальность кода и возвращает ErrDuplicateKey проигравшему.
// AppendFlag атомарно добавляет модератора, если его еще нет, и возвращает итоговое число флагов.
type URLRepository interface {
	FindOne(ctx context.Context, q Query) (*models.URL, error)
	Find(ctx context.Context, q Query, opts FindOptions) ([]models.URL, error)
	Insert(ctx context.Context, url *models.URL) error
	AppendFlag(ctx context.Context, code, moderatorID string) (FlagResult, error)
	Delete(ctx context.Context, q Query) (int64, error)
	Stats(ctx context.Context) (*models.CollectionStats, error)
	Ping(ctx context.Context) error
}
