// Package memstore репозиторий ссылок поверх хранилища в памяти (db.MemoryStorage).
// Используется по умолчанию, когда не задано ни postgres, ни sqlite.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fsdevblog/screws/internal/db"
	"github.com/fsdevblog/screws/internal/db/memory"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

const collectionName = "urls"

// URLRepo представляет собой репозиторий для работы с URL в памяти.
// Записи хранятся по ключу code, поэтому уникальность кода обеспечивает само хранилище.
type URLRepo struct {
	s *db.MemoryStorage
}

// NewURLRepo создает новый экземпляр репозитория URL.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *URLRepo: инициализированный репозиторий
func NewURLRepo(store *db.MemoryStorage) *URLRepo {
	return &URLRepo{
		s: store,
	}
}

// FindOne находит первую запись, подходящую под фильтр.
//
// Параметры:
//   - ctx: контекст выполнения
//   - q: фильтр
//
// Возвращает:
//   - *models.URL: найденная запись
//   - error: repositories.ErrNotFound, если записи нет
func (u *URLRepo) FindOne(ctx context.Context, q repositories.Query) (*models.URL, error) {
	if byCode, ok := q.(repositories.ByCode); ok {
		url, err := memory.Get[models.URL](ctx, byCode.Code, u.s.MStorage)
		if err != nil {
			return nil, fmt.Errorf("failed to get record by code %s: %w", byCode.Code, convertErrorType(err))
		}
		return url, nil
	}

	urls, err := u.Find(ctx, q, repositories.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &urls[0], nil
}

// Find возвращает записи, подходящие под фильтр.
//
// Параметры:
//   - ctx: контекст выполнения
//   - q: фильтр
//   - opts: сортировка и лимит
//
// Возвращает:
//   - []models.URL: найденные записи
//   - error: ошибка выборки (преобразованная через convertErrorType)
func (u *URLRepo) Find(ctx context.Context, q repositories.Query, opts repositories.FindOptions) ([]models.URL, error) {
	if err := checkQuery(q); err != nil {
		return nil, err
	}

	urls, err := memory.FilterAll[models.URL](ctx, u.s.MStorage, func(val models.URL) bool {
		ok, _ := repositories.Match(q, &val)
		return ok
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", convertErrorType(err))
	}

	switch opts.Sort {
	case repositories.SortDateAsc:
		slices.SortStableFunc(urls, func(a, b models.URL) int { return compareDate(a.Date, b.Date) })
	case repositories.SortDateDesc:
		slices.SortStableFunc(urls, func(a, b models.URL) int { return compareDate(b.Date, a.Date) })
	case repositories.SortNone:
	}

	if opts.Limit > 0 && len(urls) > opts.Limit {
		urls = urls[:opts.Limit]
	}
	return urls, nil
}

// Insert создает новую запись.
//
// Параметры:
//   - ctx: контекст выполнения
//   - url: запись
//
// Возвращает:
//   - error: repositories.ErrDuplicateKey, если код уже занят
func (u *URLRepo) Insert(ctx context.Context, url *models.URL) error {
	if err := memory.Set[models.URL](ctx, url.Code, url, u.s.MStorage); err != nil {
		return fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	return nil
}

// AppendFlag атомарно добавляет модератора в список флагов записи, если его там нет.
//
// Параметры:
//   - ctx: контекст выполнения
//   - code: код записи
//   - moderatorID: идентификатор модератора
//
// Возвращает:
//   - repositories.FlagResult: добавлен ли флаг и итоговое количество флагов
//   - error: repositories.ErrNotFound, если записи нет
func (u *URLRepo) AppendFlag(ctx context.Context, code, moderatorID string) (repositories.FlagResult, error) {
	var result repositories.FlagResult
	err := memory.Update[models.URL](ctx, code, u.s.MStorage, func(val *models.URL) (bool, error) {
		if val.HasFlag(moderatorID) {
			result.Count = len(val.Flags)
			return false, nil
		}
		val.Flags = append(val.Flags, moderatorID)
		result = repositories.FlagResult{Appended: true, Count: len(val.Flags)}
		return true, nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to flag record %s: %w", code, convertErrorType(err))
	}
	return result, nil
}

// Delete удаляет записи, подходящие под фильтр.
//
// Параметры:
//   - ctx: контекст выполнения
//   - q: фильтр
//
// Возвращает:
//   - int64: количество удаленных записей
//   - error: ошибка удаления (преобразованная через convertErrorType)
func (u *URLRepo) Delete(ctx context.Context, q repositories.Query) (int64, error) {
	if err := checkQuery(q); err != nil {
		return 0, err
	}

	n, err := memory.DeleteFunc[models.URL](ctx, u.s.MStorage, func(val models.URL) bool {
		ok, _ := repositories.Match(q, &val)
		return ok
	})
	if err != nil {
		return n, fmt.Errorf("failed to delete records: %w", convertErrorType(err))
	}
	return n, nil
}

// Stats статистика хранилища. Размеры считаются по сериализованным записям.
func (u *URLRepo) Stats(_ context.Context) (*models.CollectionStats, error) {
	count := int64(u.s.Len())
	size := u.s.Size()

	stats := &models.CollectionStats{
		OK:          true,
		Name:        collectionName,
		Count:       count,
		Size:        size,
		StorageSize: size,
	}
	if count > 0 {
		stats.AvgObjSize = size / count
	}
	return stats, nil
}

// Ping хранилище в памяти всегда доступно.
func (u *URLRepo) Ping(ctx context.Context) error {
	return ctx.Err() //nolint:wrapcheck
}

func checkQuery(q repositories.Query) error {
	if _, err := repositories.Match(q, &models.URL{}); err != nil {
		if errors.Is(err, repositories.ErrUnsupportedQuery) {
			return fmt.Errorf("%w: %T", err, q)
		}
		return err
	}
	return nil
}

func compareDate(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

var _ repositories.URLRepository = (*URLRepo)(nil)
