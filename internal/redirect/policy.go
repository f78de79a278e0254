// Package redirect принимает решение о переходе по короткому коду.
//
// Решение зависит от состояния записи (нет, истекла, защищена паролем)
// и контекста запроса (cookie пропуска подтверждения, введенный пароль).
// Длинная ссылка попадает в решение только тогда, когда переход разрешен.
package redirect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/passwords"
	"github.com/fsdevblog/screws/internal/repositories"
)

//go:generate mockgen -source=policy.go -destination=mocks/store.go -package=mocks

// ErrStoreUnavailable хранилище не ответило. Не путать с отсутствием записи.
var ErrStoreUnavailable = errors.New("store unavailable")

// Kind исход проверки.
type Kind int

const (
	NotFound Kind = iota
	PasswordRequired
	SilentRedirect
	ImmediateRedirect
	Interstitial
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case PasswordRequired:
		return "password_required"
	case SilentRedirect:
		return "silent_redirect"
	case ImmediateRedirect:
		return "immediate_redirect"
	case Interstitial:
		return "interstitial"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Decision результат проверки.
type Decision struct {
	Kind Kind
	// Record заполняется, когда переход разрешен.
	Record *models.URL
	// LongURL пустой для NotFound и PasswordRequired.
	LongURL string
	// IncorrectPassword пароль был передан, но не подошел.
	IncorrectPassword bool
}

// RequestContext контекст запроса.
type RequestContext struct {
	SkipConfirmation bool
	Password         *string
}

// Store операции хранилища, нужные политике.
type Store interface {
	FindOne(ctx context.Context, q repositories.Query) (*models.URL, error)
	Delete(ctx context.Context, q repositories.Query) (int64, error)
}

// PasswordMatcher сверяет пароль с хешем.
type PasswordMatcher func(hash, plain string) (bool, error)

// Policy неизменяемая политика переходов.
type Policy struct {
	store      Store
	secretURLs []string
	match      PasswordMatcher
	now        func() time.Time
	logger     *zap.Logger
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) func(*Policy) {
	return func(p *Policy) {
		p.now = now
	}
}

// WithPasswordMatcher подменяет проверку пароля.
func WithPasswordMatcher(m PasswordMatcher) func(*Policy) {
	return func(p *Policy) {
		p.match = m
	}
}

// NewPolicy создает политику.
//
// Параметры:
//   - store: хранилище ссылок
//   - secretURLs: подстроки длинных ссылок, для которых переход выполняется молча
//   - logger: логгер
//   - opts: функции для настройки
//
// Возвращает:
//   - *Policy: политика
func NewPolicy(store Store, secretURLs []string, logger *zap.Logger, opts ...func(*Policy)) *Policy {
	p := &Policy{
		store:      store,
		secretURLs: append([]string(nil), secretURLs...),
		match:      passwords.Compare,
		now:        time.Now,
		logger:     logger.Named("redirect"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve принимает решение по коду.
//
// Параметры:
//   - ctx: контекст выполнения
//   - code: короткий код
//   - rc: контекст запроса
//
// Возвращает:
//   - Decision: решение
//   - error: ErrStoreUnavailable, если хранилище недоступно
func (p *Policy) Resolve(ctx context.Context, code string, rc RequestContext) (Decision, error) {
	rec, err := p.store.FindOne(ctx, repositories.ByCode{Code: code})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Decision{Kind: NotFound}, nil
		}
		p.logger.Error("lookup failed", zap.String("code", code), zap.Error(err))
		return Decision{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	now := p.now()
	if rec.IsExpired(now) {
		p.purgeExpired(ctx, code, now)
		return Decision{Kind: NotFound}, nil
	}

	if rec.IsProtected() {
		if rc.Password == nil || *rc.Password == "" {
			return Decision{Kind: PasswordRequired}, nil
		}
		ok, matchErr := p.match(*rec.Password, *rc.Password)
		if matchErr != nil {
			p.logger.Error("password check failed", zap.String("code", code), zap.Error(matchErr))
		}
		if !ok {
			return Decision{Kind: PasswordRequired, IncorrectPassword: true}, nil
		}
	}

	if p.isSecret(rec.LongURL) {
		return Decision{Kind: SilentRedirect, Record: rec, LongURL: rec.LongURL}, nil
	}

	if rc.SkipConfirmation {
		return Decision{Kind: ImmediateRedirect, Record: rec, LongURL: rec.LongURL}, nil
	}

	return Decision{Kind: Interstitial, Record: rec, LongURL: rec.LongURL}, nil
}

// purgeExpired удаляет истекшую запись. Условие по сроку повторяется в запросе,
// чтобы не удалить запись, созданную заново с тем же кодом.
func (p *Policy) purgeExpired(ctx context.Context, code string, now time.Time) {
	n, err := p.store.Delete(ctx, repositories.ExpiredCode{Code: code, Now: now.UnixMilli()})
	if err != nil {
		p.logger.Warn("failed to delete expired record", zap.String("code", code), zap.Error(err))
		return
	}
	p.logger.Debug("expired record deleted", zap.String("code", code), zap.Int64("deleted", n))
}

func (p *Policy) isSecret(longURL string) bool {
	for _, s := range p.secretURLs {
		if s != "" && strings.Contains(longURL, s) {
			return true
		}
	}
	return false
}
