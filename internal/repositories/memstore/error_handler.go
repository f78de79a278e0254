package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/screws/internal/db/memory"
	"github.com/fsdevblog/screws/internal/repositories"
)

// convertErrorType переводит ошибки хранилища в памяти в ошибки уровня репозитория:
// memory.ErrDuplicateKey в repositories.ErrDuplicateKey, memory.ErrNotFound в repositories.ErrNotFound.
// Отмена контекста сохраняется в цепочке, чтобы сервис мог отличить ее от сбоя хранилища.
func convertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memory.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicateKey, err)
	case errors.Is(err, memory.ErrNotFound):
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", repositories.ErrUnknown, err)
	}
}
