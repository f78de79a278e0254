package controllers

import (
	"context"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/moderation"
	"github.com/fsdevblog/screws/internal/preview"
	"github.com/fsdevblog/screws/internal/redirect"
	"github.com/fsdevblog/screws/internal/services"
	"github.com/fsdevblog/screws/internal/tracking"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/services.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

type URLService interface {
	// Create создает запись. Возвращает модель, признак повторного использования существующей записи и ошибку.
	Create(ctx context.Context, p services.CreateParams) (*models.URL, bool, error)
	Resolve(ctx context.Context, code string, rc redirect.RequestContext) (redirect.Decision, error)
	Lookup(ctx context.Context, code string, password *string) (*models.URL, error)
	BuildInterstitial(rec *models.URL) (*services.Interstitial, error)
	QR(ctx context.Context, code string, size int) ([]byte, error)
	Clean(rawURL string) (tracking.Result, error)
	Unscrew(ctx context.Context, rawURL string) (*preview.UnscrewResult, error)
	ShortURL(code string) string
}

type AdminService interface {
	Stats(ctx context.Context) (*models.CollectionStats, error)
	Search(ctx context.Context, field, query string) ([]models.URL, error)
	Delete(ctx context.Context, codes []string, moderatorID string) (*moderation.Result, error)
	Backup(ctx context.Context, adminName string) (*models.Backup, string, error)
}

// Recorder счетчики прикладных событий.
type Recorder interface {
	URLCreated(reused bool)
	RedirectDecision(decision string)
	ModerationOutcome(outcome string, n int)
	RateLimited(scope string)
}

type nopRecorder struct{}

func (nopRecorder) URLCreated(bool) {}
func (nopRecorder) RedirectDecision(string) {}
func (nopRecorder) ModerationOutcome(string, int) {}
func (nopRecorder) RateLimited(string) {}
