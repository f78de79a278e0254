package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/fsdevblog/screws/internal/repositories"
	"github.com/fsdevblog/screws/internal/urlcodec"
)

// Поля поиска в панели администратора.
const (
	FieldID         = "id"
	FieldCode       = "code"
	FieldDate       = "date"
	FieldExpiration = "expiration"
	FieldLongURL    = "longUrl"
	FieldFlags      = "flags"
)

// ParseQuery переводит ввод панели администратора в типизированный фильтр.
//
// Для date и expiration поддерживаются `< n`, `> n` и NOW вместо числа,
// для expiration еще `null` (бессрочные). Число без оператора ищет точное значение.
//
// Параметры:
//   - field: поле поиска
//   - raw: строка запроса
//   - now: текущее время для NOW
//
// Возвращает:
//   - repositories.Query: фильтр
//   - error: ValidationError
func ParseQuery(field, raw string, now time.Time) (repositories.Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, newValidationError("query is required")
	}

	switch field {
	case FieldID:
		return repositories.ByID{ID: raw}, nil
	case FieldCode:
		return repositories.ByCode{Code: raw}, nil
	case FieldLongURL:
		return repositories.ByLongURL{LongURL: urlcodec.Normalize(raw)}, nil
	case FieldFlags:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, newValidationError("flags query must be a non-negative number")
		}
		return repositories.ByFlagCount{Count: n}, nil
	case FieldDate:
		after, before, err := parseRange(raw, now)
		if err != nil {
			return nil, err
		}
		return repositories.ByDateRange{After: after, Before: before}, nil
	case FieldExpiration:
		if raw == "null" {
			return repositories.ByExpiration{Null: true}, nil
		}
		after, before, err := parseRange(raw, now)
		if err != nil {
			return nil, err
		}
		return repositories.ByExpiration{After: after, Before: before}, nil
	default:
		return nil, newValidationError("unsupported field " + strconv.Quote(field))
	}
}

func parseRange(raw string, now time.Time) (*int64, *int64, error) {
	op := raw[0]
	if op != '<' && op != '>' {
		v, err := parseTimestamp(raw, now)
		if err != nil {
			return nil, nil, err
		}
		after, before := v-1, v+1
		return &after, &before, nil
	}

	v, err := parseTimestamp(strings.TrimSpace(raw[1:]), now)
	if err != nil {
		return nil, nil, err
	}
	if op == '<' {
		return nil, &v, nil
	}
	return &v, nil, nil
}

func parseTimestamp(s string, now time.Time) (int64, error) {
	if s == "NOW" {
		return now.UnixMilli(), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, newValidationError("expected a unix ms timestamp or NOW")
	}
	return v, nil
}
