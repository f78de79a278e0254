package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/codegen"
	"github.com/fsdevblog/screws/internal/config"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/passwords"
	"github.com/fsdevblog/screws/internal/preview"
	"github.com/fsdevblog/screws/internal/qr"
	"github.com/fsdevblog/screws/internal/redirect"
	"github.com/fsdevblog/screws/internal/repositories"
	"github.com/fsdevblog/screws/internal/tracking"
	"github.com/fsdevblog/screws/internal/urlcodec"
)

const (
	// MaxCustomCodeLength максимальная длина кода, заданного пользователем.
	MaxCustomCodeLength = 24
	// UnscrewTimeout таймаут запроса инструмента unscrew.
	UnscrewTimeout = 5 * time.Second
	// NoExpiration значение expirationHours для бессрочной ссылки.
	NoExpiration = -1
)

// AllowedExpirationHours допустимые сроки жизни ссылки в часах.
var AllowedExpirationHours = []int{NoExpiration, 1, 6, 24, 168} //nolint:gochecknoglobals

// CreateParams входные данные создания ссылки.
type CreateParams struct {
	LongURL         string
	Code            string
	ExpirationHours int
	Password        string
}

// Interstitial данные промежуточной страницы перед переходом.
type Interstitial struct {
	URL       models.ClientURL `json:"url"`
	ShortURL  string           `json:"shortUrl"`
	Tracking  tracking.Result  `json:"tracking"`
	QR        string           `json:"qr"`
	ExpiresIn string           `json:"expiresIn,omitempty"`
}

// URLServiceOptions настройки URLService.
type URLServiceOptions struct {
	BaseURL        string
	UseFullWords   bool
	WordCount      int
	PreviewTimeout time.Duration
	Now            func() time.Time
	NewID          func() string
	HashPassword   func(plain string) (string, error)
	MatchPassword  redirect.PasswordMatcher
	Generator      []func(*codegen.Options)
}

// URLService жизненный цикл ссылок: создание, проверка перехода, инструменты.
type URLService struct {
	repo      URLRepository
	fetcher   PreviewFetcher
	validator *urlcodec.Validator
	reserved  urlcodec.ReservedSet
	generator *codegen.Generator
	redirects *redirect.Policy
	tracking  *tracking.Filter
	opts      URLServiceOptions
	logger    *zap.Logger
}

// NewURLService создает сервис.
//
// Параметры:
//   - repo: хранилище ссылок
//   - fetcher: получение превью, может быть nil
//   - policy: таблицы политики
//   - logger: логгер
//   - opts: функции для настройки
//
// Возвращает:
//   - *URLService: сервис
//   - error: ошибка компиляции шаблонов трекинговых параметров
func NewURLService(
	repo URLRepository,
	fetcher PreviewFetcher,
	policy *config.Policy,
	logger *zap.Logger,
	opts ...func(*URLServiceOptions),
) (*URLService, error) {
	options := URLServiceOptions{
		UseFullWords:   true,
		WordCount:      codegen.DefaultWordCount,
		PreviewTimeout: preview.DefaultTimeout,
		Now:            time.Now,
		NewID:          uuid.NewString,
		HashPassword:   passwords.Hash,
		MatchPassword:  passwords.Compare,
	}
	for _, opt := range opts {
		opt(&options)
	}
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")

	filter, err := tracking.NewFilter(policy.TrackingParams)
	if err != nil {
		return nil, fmt.Errorf("tracking filter: %w", err)
	}

	logger = logger.Named("url_service")
	reserved := urlcodec.NewReservedSet(policy.ReservedCodes)

	return &URLService{
		repo:      repo,
		fetcher:   fetcher,
		validator: urlcodec.NewValidator(options.BaseURL, policy.BlockedDomains),
		reserved:  reserved,
		generator: codegen.New(reserved, logger, options.Generator...),
		redirects: redirect.NewPolicy(repo, policy.SecretURLs, logger,
			redirect.WithClock(options.Now),
			redirect.WithPasswordMatcher(options.MatchPassword),
		),
		tracking: filter,
		opts:     options,
		logger:   logger,
	}, nil
}

// Create создает короткую ссылку.
//
// Ссылка без своего кода, без срока и без пароля переиспользуется, если такая же
// случайная бессрочная запись без пароля уже есть.
//
// Параметры:
//   - ctx: контекст выполнения
//   - p: входные данные
//
// Возвращает:
//   - *models.URL: запись
//   - bool: true, если возвращена существующая запись
//   - error: ValidationError, ErrCodeAlreadyTaken, ErrCodeGenerationExhausted, ErrStoreUnavailable
func (s *URLService) Create(ctx context.Context, p CreateParams) (*models.URL, bool, error) {
	trimmed := strings.TrimSpace(p.LongURL)
	if trimmed == "" {
		return nil, false, newValidationError("url is required")
	}
	longURL := urlcodec.Normalize(trimmed)
	if err := s.validator.Validate(longURL); err != nil {
		return nil, false, newValidationError(err.Error())
	}

	code := strings.TrimSpace(p.Code)
	if code != "" {
		if len(code) > MaxCustomCodeLength {
			return nil, false, newValidationError(fmt.Sprintf("code must be at most %d characters", MaxCustomCodeLength))
		}
		if !urlcodec.IsSafeCode(code) {
			return nil, false, newValidationError("code may contain only letters, digits and dashes")
		}
	}
	if !slices.Contains(AllowedExpirationHours, p.ExpirationHours) {
		return nil, false, newValidationError("unsupported expiration")
	}

	isRandomCode := false
	if code == "" {
		if p.ExpirationHours == NoExpiration && p.Password == "" {
			existing, err := s.repo.FindOne(ctx, repositories.Reusable{LongURL: longURL})
			if err == nil {
				return existing, true, nil
			}
			if !errors.Is(err, repositories.ErrNotFound) {
				return nil, false, convertErrorType(err)
			}
		}

		generated, err := s.generator.Generate(ctx, s, s.opts.UseFullWords, s.opts.WordCount)
		if err != nil {
			if errors.Is(err, codegen.ErrExhausted) {
				return nil, false, ErrCodeGenerationExhausted
			}
			return nil, false, fmt.Errorf("%w: %w", ErrUnknown, err)
		}
		code = generated
		isRandomCode = true
	}

	if s.reserved.IsReserved(code) {
		return nil, false, ErrCodeAlreadyTaken
	}

	var hashed *string
	if p.Password != "" {
		h, err := s.opts.HashPassword(p.Password)
		if err != nil {
			return nil, false, fmt.Errorf("%w: hash password: %w", ErrUnknown, err)
		}
		hashed = &h
	}

	now := s.opts.Now()
	if !isRandomCode {
		if err := s.reclaimCode(ctx, code, now); err != nil {
			return nil, false, err
		}
	}

	rec := &models.URL{
		ID:           s.opts.NewID(),
		Code:         code,
		LongURL:      longURL,
		IsRandomCode: isRandomCode,
		Date:         now.UnixMilli(),
		Password:     hashed,
		Preview:      s.fetchPreview(ctx, longURL),
	}
	if p.ExpirationHours > 0 {
		exp := now.Add(time.Duration(p.ExpirationHours) * time.Hour).UnixMilli()
		rec.Expiration = &exp
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, false, convertErrorType(err)
	}

	s.logger.Info("url created",
		zap.String("code", rec.Code),
		zap.Bool("random", isRandomCode),
		zap.Bool("protected", hashed != nil),
	)
	return rec, false, nil
}

// reclaimCode освобождает код, если его держит истекшая запись.
func (s *URLService) reclaimCode(ctx context.Context, code string, now time.Time) error {
	existing, err := s.repo.FindOne(ctx, repositories.ByCode{Code: code})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return convertErrorType(err)
	}
	if !existing.IsExpired(now) {
		return ErrCodeAlreadyTaken
	}
	if _, err = s.repo.Delete(ctx, repositories.ExpiredCode{Code: code, Now: now.UnixMilli()}); err != nil {
		return convertErrorType(err)
	}
	s.logger.Debug("expired code reclaimed", zap.String("code", code))
	return nil
}

func (s *URLService) fetchPreview(ctx context.Context, longURL string) *models.Preview {
	if s.fetcher == nil {
		return nil
	}
	return s.fetcher.Fetch(ctx, longURL, s.opts.PreviewTimeout)
}

// IsCodeTaken реализует codegen.CodeChecker. Истекшие записи тоже считаются занятыми.
func (s *URLService) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	_, err := s.repo.FindOne(ctx, repositories.ByCode{Code: code})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return true, convertErrorType(err)
}

// Resolve решение о переходе по коду.
//
// Возвращает:
//   - redirect.Decision: решение
//   - error: ErrStoreUnavailable
func (s *URLService) Resolve(ctx context.Context, code string, rc redirect.RequestContext) (redirect.Decision, error) {
	d, err := s.redirects.Resolve(ctx, code, rc)
	if err != nil {
		if errors.Is(err, redirect.ErrStoreUnavailable) {
			return redirect.Decision{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return redirect.Decision{}, err
	}
	return d, nil
}

// Lookup возвращает запись по коду, если доступ к ней разрешен.
//
// Параметры:
//   - ctx: контекст выполнения
//   - code: короткий код
//   - password: введенный пароль, nil если не передан
//
// Возвращает:
//   - *models.URL: запись
//   - error: ErrRecordNotFound, ErrPasswordRequired, ErrIncorrectPassword, ErrStoreUnavailable
func (s *URLService) Lookup(ctx context.Context, code string, password *string) (*models.URL, error) {
	d, err := s.Resolve(ctx, code, redirect.RequestContext{Password: password})
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case redirect.NotFound:
		return nil, ErrRecordNotFound
	case redirect.PasswordRequired:
		if d.IncorrectPassword {
			return nil, ErrIncorrectPassword
		}
		return nil, ErrPasswordRequired
	case redirect.SilentRedirect, redirect.ImmediateRedirect, redirect.Interstitial:
		return d.Record, nil
	default:
		return nil, ErrUnknown
	}
}

// BuildInterstitial собирает данные промежуточной страницы.
func (s *URLService) BuildInterstitial(rec *models.URL) (*Interstitial, error) {
	shortURL := s.ShortURL(rec.Code)
	dataURI, err := qr.DataURI(shortURL, qr.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %w", ErrUnknown, err)
	}

	view := &Interstitial{
		URL:      rec.ToClient(),
		ShortURL: shortURL,
		Tracking: s.tracking.Analyze(rec.LongURL),
		QR:       dataURI,
	}
	if rec.Expiration != nil {
		view.ExpiresIn = models.FormatDuration(time.UnixMilli(*rec.Expiration).Sub(s.opts.Now()))
	}
	return view, nil
}

// QR возвращает PNG с QR кодом короткой ссылки.
//
// Возвращает:
//   - []byte: изображение
//   - error: ErrRecordNotFound, если кода нет или запись истекла
func (s *URLService) QR(ctx context.Context, code string, size int) ([]byte, error) {
	rec, err := s.repo.FindOne(ctx, repositories.ByCode{Code: code})
	if err != nil {
		return nil, convertErrorType(err)
	}
	if rec.IsExpired(s.opts.Now()) {
		return nil, ErrRecordNotFound
	}
	png, err := qr.PNG(s.ShortURL(code), size)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %w", ErrUnknown, err)
	}
	return png, nil
}

// Clean анализирует ссылку на трекинговые параметры.
func (s *URLService) Clean(rawURL string) (tracking.Result, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return tracking.Result{}, newValidationError("url is required")
	}
	return s.tracking.Analyze(urlcodec.Normalize(trimmed)), nil
}

// Unscrew выясняет, куда на самом деле ведет ссылка.
//
// Возвращает:
//   - *preview.UnscrewResult: результат
//   - error: ValidationError, ErrFetchFailed
func (s *URLService) Unscrew(ctx context.Context, rawURL string) (*preview.UnscrewResult, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" || !s.validator.IsValid(trimmed) {
		return nil, newValidationError("invalid url provided")
	}
	if s.fetcher == nil {
		return nil, ErrFetchFailed
	}
	res, err := s.fetcher.Unscrew(ctx, urlcodec.Normalize(trimmed), UnscrewTimeout)
	if err != nil {
		s.logger.Debug("unscrew failed", zap.String("url", trimmed), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return res, nil
}

// ShortURL полная короткая ссылка для кода.
func (s *URLService) ShortURL(code string) string {
	return s.opts.BaseURL + "/" + code
}
