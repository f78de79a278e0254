package sql

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/fsdevblog/screws/internal/repositories"
)

// ConvertErrorType конвертирует ошибки gorm в ошибки уровня репозитория.
func ConvertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUnsupportedQuery):
		return repositories.ErrUnsupportedQuery
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	default:
		return repositories.ErrUnknown
	}
}
