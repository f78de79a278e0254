package services

import (
	"context"
	"time"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/preview"
	"github.com/fsdevblog/screws/internal/repositories"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// URLRepository хранилище ссылок.
type URLRepository interface {
	repositories.URLRepository
}

// PreviewFetcher получение превью целевых страниц.
type PreviewFetcher interface {
	// Fetch возвращает nil, если превью получить не удалось.
	Fetch(ctx context.Context, url string, timeout time.Duration) *models.Preview
	Unscrew(ctx context.Context, url string, timeout time.Duration) (*preview.UnscrewResult, error)
}

// BackupUploader выгрузка резервной копии во внешнее хранилище.
type BackupUploader interface {
	Upload(ctx context.Context, b *models.Backup) (string, error)
}
