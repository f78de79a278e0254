package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/screws/internal/repositories"
)

var (
	ErrUnknown                 = errors.New("[service]: unknown error")
	ErrValidation              = errors.New("[service]: validation failed")
	ErrCodeAlreadyTaken        = errors.New("[service]: code already taken")
	ErrCodeGenerationExhausted = errors.New("[service]: code generation exhausted")
	ErrRecordNotFound          = errors.New("[service]: record not found")
	ErrPasswordRequired        = errors.New("[service]: password required")
	ErrIncorrectPassword       = errors.New("[service]: incorrect password")
	ErrStoreUnavailable        = errors.New("[service]: store unavailable")
	ErrFetchFailed             = errors.New("[service]: fetch failed")
)

// ValidationError ошибка валидации входных данных с причиной для клиента.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// convertErrorType переводит ошибки репозитория в ошибки сервиса.
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrRecordNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return ErrCodeAlreadyTaken
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
