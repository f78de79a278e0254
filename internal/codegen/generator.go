// Package codegen генерация уникальных коротких кодов.
//
// Генератор работает в двух режимах: склейка случайных словарных слов
// и случайная base62 строка. Каждый кандидат проверяется по хранилищу
// и списку зарезервированных кодов. Число попыток ограничено.
package codegen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
)

//go:generate mockgen -source=generator.go -destination=mocks/checker.go -package=mocks

// Значения по умолчанию.
const (
	DefaultMaxAttempts = 10
	DefaultTokenLength = 9
	DefaultWordCount   = 2
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ErrExhausted исчерпан лимит попыток генерации.
var ErrExhausted = errors.New("code generation exhausted")

// CodeChecker проверка занятости кода в хранилище.
type CodeChecker interface {
	// IsCodeTaken возвращает true, если в хранилище есть запись с кодом (в т.ч. истекшая).
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}

// ReservedChecker список зарезервированных кодов.
type ReservedChecker interface {
	IsReserved(code string) bool
}

// Options настройки генератора.
type Options struct {
	MaxAttempts int
	TokenLength int
}

// WithMaxAttempts задает лимит попыток.
func WithMaxAttempts(n int) func(*Options) {
	return func(o *Options) {
		o.MaxAttempts = n
	}
}

// WithTokenLength задает длину случайной строки.
func WithTokenLength(n int) func(*Options) {
	return func(o *Options) {
		o.TokenLength = n
	}
}

// Generator генератор кодов. Безопасен для конкурентного использования.
type Generator struct {
	reserved ReservedChecker
	logger   *zap.Logger
	opts     Options

	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New создает генератор.
//
// Параметры:
//   - reserved: список зарезервированных кодов
//   - logger: логгер
//   - opts: функции для настройки генератора
//
// Возвращает:
//   - *Generator: генератор
func New(reserved ReservedChecker, logger *zap.Logger, opts ...func(*Options)) *Generator {
	options := Options{
		MaxAttempts: DefaultMaxAttempts,
		TokenLength: DefaultTokenLength,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = DefaultMaxAttempts
	}
	if options.TokenLength <= 0 {
		options.TokenLength = DefaultTokenLength
	}

	return &Generator{
		reserved: reserved,
		logger:   logger.Named("codegen"),
		opts:     options,
		faker:    gofakeit.New(0),
	}
}

// Generate подбирает свободный код.
//
// Параметры:
//   - ctx: контекст выполнения
//   - checker: проверка занятости кода
//   - useFullWords: режим словарных слов
//   - wordCount: начальное количество слов (в режиме слов каждая неудача добавляет одно)
//
// Возвращает:
//   - string: свободный код
//   - error: ErrExhausted, если лимит попыток исчерпан, либо ошибка генерации случайной строки
func (g *Generator) Generate(
	ctx context.Context,
	checker CodeChecker,
	useFullWords bool,
	wordCount int,
) (string, error) {
	if wordCount <= 0 {
		wordCount = DefaultWordCount
	}

	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		candidate, err := g.candidate(useFullWords, wordCount)
		if err != nil {
			return "", err
		}

		if g.isAcceptable(ctx, checker, candidate) {
			return candidate, nil
		}

		if useFullWords {
			wordCount = nextWordCount(candidate, wordCount)
		}
	}

	g.logger.Error("code generation exhausted",
		zap.Int("attempts", g.opts.MaxAttempts),
		zap.Bool("fullWords", useFullWords),
	)
	return "", ErrExhausted
}

// nextWordCount после неудачи добавляет слово, пока код помещается в MaxCodeLength.
func nextWordCount(candidate string, wordCount int) int {
	if len(candidate) > models.MaxCodeLength {
		return wordCount
	}
	return wordCount + 1
}

// isAcceptable проверяет кандидата. Ошибка хранилища трактуется как занятый код.
func (g *Generator) isAcceptable(ctx context.Context, checker CodeChecker, candidate string) bool {
	if candidate == "" || len(candidate) > models.MaxCodeLength || g.reserved.IsReserved(candidate) {
		return false
	}

	taken, err := checker.IsCodeTaken(ctx, candidate)
	if err != nil {
		g.logger.Warn("code lookup failed, treating as taken",
			zap.String("code", candidate),
			zap.Error(err),
		)
		return false
	}
	return !taken
}

func (g *Generator) candidate(useFullWords bool, wordCount int) (string, error) {
	if useFullWords {
		return g.words(wordCount), nil
	}
	return RandomToken(g.opts.TokenLength)
}

// words склеивает слова без разделителя.
func (g *Generator) words(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	for range n {
		b.WriteString(sanitizeWord(g.faker.Word()))
	}
	return b.String()
}

// sanitizeWord оставляет в слове только [a-z0-9].
func sanitizeWord(w string) string {
	w = strings.ToLower(w)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, w)
}

// RandomToken криптостойкая base62 строка длины n.
func RandomToken(n int) (string, error) {
	base := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(n)
	for range n {
		idx, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("random token: %w", err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}
