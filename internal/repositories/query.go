package repositories

import (
	"slices"

	"github.com/fsdevblog/screws/internal/models"
)

// Query закрытый набор типизированных фильтров по записям ссылок.
// Реализации хранилищ транслируют каждый вариант в свой язык запросов.
type Query interface {
	isQuery()
}

// ByID запись по идентификатору.
type ByID struct{ ID string }

// ByIDs записи по списку идентификаторов.
type ByIDs struct{ IDs []string }

// ByCode запись по точному коду.
type ByCode struct{ Code string }

// ByCodes записи по списку кодов.
type ByCodes struct{ Codes []string }

// ByLongURL записи по точной длинной ссылке.
type ByLongURL struct{ LongURL string }

// ByDateRange записи, созданные в интервале (After, Before). Nil граница не ограничивает.
type ByDateRange struct {
	After  *int64
	Before *int64
}

// ByExpiration фильтр по сроку действия. Null выбирает бессрочные записи,
// иначе интервал (After, Before) по полю expiration.
type ByExpiration struct {
	Null   bool
	After  *int64
	Before *int64
}

// ByFlagCount записи с точным количеством флагов (0 - без флагов).
type ByFlagCount struct{ Count int }

// Reusable запись, которую можно вернуть повторно при создании:
// случайный код, бессрочная, без пароля.
type Reusable struct{ LongURL string }

// ExpiredCode истекшая на момент Now (unix ms) запись с кодом Code.
type ExpiredCode struct {
	Code string
	Now  int64
}

// All все записи.
type All struct{}

func (ByID) isQuery()         {}
func (ByIDs) isQuery()        {}
func (ByCode) isQuery()       {}
func (ByCodes) isQuery()      {}
func (ByLongURL) isQuery()    {}
func (ByDateRange) isQuery()  {}
func (ByExpiration) isQuery() {}
func (ByFlagCount) isQuery()  {}
func (Reusable) isQuery()     {}
func (ExpiredCode) isQuery()  {}
func (All) isQuery()          {}

// SortOrder порядок выдачи Find.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortDateAsc
	SortDateDesc
)

// FindOptions параметры выборки.
type FindOptions struct {
	Sort  SortOrder
	Limit int // 0 - без ограничения
}

// FlagResult результат атомарного добавления флага.
type FlagResult struct {
	Appended bool // false, если модератор уже отмечал запись
	Count    int  // количество флагов после операции
}

// Match проверяет запись на соответствие фильтру в памяти процесса.
//
// Параметры:
//   - q: фильтр
//   - u: запись
//
// Возвращает:
//   - bool: подходит ли запись
//   - error: ErrUnsupportedQuery для неизвестного варианта фильтра
func Match(q Query, u *models.URL) (bool, error) {
	switch q := q.(type) {
	case ByID:
		return u.ID == q.ID, nil
	case ByIDs:
		return slices.Contains(q.IDs, u.ID), nil
	case ByCode:
		return u.Code == q.Code, nil
	case ByCodes:
		return slices.Contains(q.Codes, u.Code), nil
	case ByLongURL:
		return u.LongURL == q.LongURL, nil
	case ByDateRange:
		return inRange(u.Date, q.After, q.Before), nil
	case ByExpiration:
		if q.Null {
			return u.Expiration == nil, nil
		}
		return u.Expiration != nil && inRange(*u.Expiration, q.After, q.Before), nil
	case ByFlagCount:
		return len(u.Flags) == q.Count, nil
	case Reusable:
		return u.LongURL == q.LongURL && u.IsRandomCode && u.Expiration == nil && !u.IsProtected(), nil
	case ExpiredCode:
		return u.Code == q.Code && u.Expiration != nil && *u.Expiration < q.Now, nil
	case All:
		return true, nil
	default:
		return false, ErrUnsupportedQuery
	}
}

func inRange(v int64, after, before *int64) bool {
	if after != nil && v <= *after {
		return false
	}
	if before != nil && v >= *before {
		return false
	}
	return true
}
