// Package preview получение Open Graph метаданных внешних страниц.
//
// Любая ошибка сети, таймаут или непригодные данные превращаются в отсутствие превью.
// Запрос отменяется по истечении таймаута, недочитанное тело отбрасывается.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fsdevblog/screws/internal/models"
)

// Значения по умолчанию.
const (
	DefaultTimeout      = 5 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultCacheTTL     = 10 * time.Minute
	DefaultUserAgent    = "Mozilla/5.0 (compatible; ScrewsPreviewBot/1.0)"
)

// ErrFetchFailed страница не получена.
var ErrFetchFailed = errors.New("fetch failed")

// UnscrewResult куда на самом деле ведет ссылка.
type UnscrewResult struct {
	Redirected  bool            `json:"redirected"`
	RequestURL  string          `json:"requestUrl"`
	ResponseURL string          `json:"responseUrl"`
	Preview     *models.Preview `json:"preview"`
}

// Options настройки.
type Options struct {
	Client       *http.Client
	MaxBodyBytes int64
	CacheTTL     time.Duration
	UserAgent    string
	// OnFetch вызывается после каждой попытки Fetch.
	OnFetch      func(ok bool)
	// Outbound общий лимит исходящих запросов, nil без ограничений.
	Outbound     *rate.Limiter
}

// WithHTTPClient подменяет http клиент.
func WithHTTPClient(c *http.Client) func(*Options) {
	return func(o *Options) {
		o.Client = c
	}
}

// WithCacheTTL время жизни результатов Unscrew в кеше.
func WithCacheTTL(ttl time.Duration) func(*Options) {
	return func(o *Options) {
		o.CacheTTL = ttl
	}
}

// WithMaxBodyBytes сколько байт страницы читать.
func WithMaxBodyBytes(n int64) func(*Options) {
	return func(o *Options) {
		o.MaxBodyBytes = n
	}
}

// WithOnFetch подписывает на результаты Fetch, например для метрик.
func WithOnFetch(fn func(ok bool)) func(*Options) {
	return func(o *Options) {
		o.OnFetch = fn
	}
}

// WithOutboundLimit ограничивает число исходящих запросов в секунду на весь процесс.
// Запрос, который не дождался своей очереди до таймаута, считается неудачным.
func WithOutboundLimit(perSecond float64, burst int) func(*Options) {
	return func(o *Options) {
		o.Outbound = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Fetcher получает превью страниц. Безопасен для конкурентного использования.
type Fetcher struct {
	opts   Options
	cache  *ristretto.Cache
	logger *zap.Logger
}

// New создает Fetcher.
//
// Параметры:
//   - logger: логгер
//   - opts: функции для настройки
//
// Возвращает:
//   - *Fetcher: экземпляр
//   - error: ошибка инициализации кеша
func New(logger *zap.Logger, opts ...func(*Options)) (*Fetcher, error) {
	options := Options{
		Client:       &http.Client{},
		MaxBodyBytes: DefaultMaxBodyBytes,
		CacheTTL:     DefaultCacheTTL,
		UserAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("init preview cache: %w", err)
	}

	return &Fetcher{
		opts:   options,
		cache:  cache,
		logger: logger.Named("preview"),
	}, nil
}

// Close освобождает кеш.
func (f *Fetcher) Close() {
	f.cache.Close()
}

// Fetch возвращает превью страницы или nil.
//
// Параметры:
//   - ctx: контекст выполнения
//   - rawURL: адрес страницы
//   - timeout: жесткий таймаут запроса
//
// Возвращает:
//   - *models.Preview: превью, либо nil если получить пригодные данные не удалось
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) *models.Preview {
	page, err := f.fetch(ctx, rawURL, timeout)
	if err != nil {
		f.logger.Debug("preview unavailable", zap.String("url", rawURL), zap.Error(err))
		f.observe(false)
		return nil
	}
	f.observe(page.preview != nil)
	return page.preview
}

func (f *Fetcher) observe(ok bool) {
	if f.opts.OnFetch != nil {
		f.opts.OnFetch(ok)
	}
}

// Unscrew проходит по цепочке редиректов и возвращает конечный адрес и превью.
// Успешные результаты кешируются.
func (f *Fetcher) Unscrew(ctx context.Context, rawURL string, timeout time.Duration) (*UnscrewResult, error) {
	if cached, ok := f.cache.Get(rawURL); ok {
		if res, isRes := cached.(UnscrewResult); isRes {
			return &res, nil
		}
	}

	page, err := f.fetch(ctx, rawURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	res := UnscrewResult{
		Redirected:  page.finalURL != rawURL,
		RequestURL:  rawURL,
		ResponseURL: page.finalURL,
		Preview:     page.preview,
	}
	f.cache.SetWithTTL(rawURL, res, 1, f.opts.CacheTTL)
	return &res, nil
}

type page struct {
	finalURL string
	preview  *models.Preview
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, timeout time.Duration) (*page, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if f.opts.Outbound != nil {
		if err := f.opts.Outbound.Wait(ctx); err != nil {
			return nil, fmt.Errorf("outbound limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	body := io.LimitReader(resp.Body, f.opts.MaxBodyBytes)
	meta, err := parseMeta(body, finalURL)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("fetch abandoned: %w", ctx.Err())
	}

	p := &page{finalURL: finalURL}
	if meta.IsUsable() {
		p.preview = meta
	}
	return p, nil
}
