// Package ratelimit ограничение частоты запросов по ключу (обычно IP клиента).
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Значения по умолчанию: 5 попыток за 2 минуты.
const (
	DefaultMax    = 5
	DefaultWindow = 2 * time.Minute

	memoryCacheSize = 10_000
)

//go:generate mockgen -source=limiter.go -destination=mocks/limiter.go -package=mocks

// Limiter решает, можно ли выполнить очередной запрос с ключом key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Settings параметры окна.
type Settings struct {
	Max    int
	Window time.Duration
}

func (s Settings) normalize() Settings {
	if s.Max <= 0 {
		s.Max = DefaultMax
	}
	if s.Window <= 0 {
		s.Window = DefaultWindow
	}
	return s
}

// MemoryLimiter лимитер в памяти процесса со скользящим окном: для каждого ключа
// хранятся отметки времени разрешенных запросов за последние Window.
// Неактивные ключи вытесняются из LRU.
type MemoryLimiter struct {
	mu       sync.Mutex
	hits     *expirable.LRU[string, []time.Time]
	settings Settings
	prefix   string
	now      func() time.Time
}

// NewMemoryLimiter создает лимитер в памяти.
//
// Параметры:
//   - prefix: пространство ключей, позволяет разделить лимиты разных операций
//   - settings: параметры окна
func NewMemoryLimiter(prefix string, settings Settings) *MemoryLimiter {
	settings = settings.normalize()
	return &MemoryLimiter{
		hits:     expirable.NewLRU[string, []time.Time](memoryCacheSize, nil, settings.Window),
		settings: settings,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Allow реализует Limiter. Повторяет логику скрипта RedisLimiter:
// отметки старше now-Window отбрасываются, запрос проходит, пока их меньше Max.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key = l.prefix + key
	now := l.now()
	cutoff := now.Add(-l.settings.Window)

	prev, _ := l.hits.Get(key)
	kept := make([]time.Time, 0, l.settings.Max)
	for _, t := range prev {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	allowed := len(kept) < l.settings.Max
	if allowed {
		kept = append(kept, now)
	}
	// Add продлевает жизнь ключа в LRU на Window от последнего обращения.
	l.hits.Add(key, kept)
	return allowed, nil
}
