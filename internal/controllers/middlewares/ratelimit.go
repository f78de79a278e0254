package middlewares

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/fsdevblog/screws/internal/ratelimit"
)

const maxPeekBody = 64 << 10

// RateLimitParams параметры RateLimitMiddleware.
type RateLimitParams struct {
	Limiter ratelimit.Limiter
	// Scope имя лимита для метрик и логов.
	Scope string
	// Counts решает, учитывается ли запрос. nil учитывает все запросы.
	Counts func(c *gin.Context) bool
	// OnLimited вызывается при отказе.
	OnLimited func(scope string)
}

// RateLimitMiddleware ограничивает частоту запросов по IP клиента.
// Ошибка лимитера не блокирует запрос, она только попадает в журнал.
func RateLimitMiddleware(p RateLimitParams) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.Limiter == nil || (p.Counts != nil && !p.Counts(c)) {
			c.Next()
			return
		}

		allowed, err := p.Limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			_ = c.Error(fmt.Errorf("rate limit %s: %w", p.Scope, err))
			c.Next()
			return
		}
		if !allowed {
			if p.OnLimited != nil {
				p.OnLimited(p.Scope)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}

// HasPassword сообщает, передан ли в JSON теле запроса непустой password.
// Тело читается и возвращается в запрос нетронутым.
func HasPassword(c *gin.Context) bool {
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return false
	}

	original := c.Request.Body
	body, err := io.ReadAll(io.LimitReader(original, maxPeekBody))
	c.Request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(body), original), Closer: original}
	if err != nil {
		return false
	}

	var payload struct {
		Password *string `json:"password"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return false
	}
	return payload.Password != nil && *payload.Password != ""
}

type readCloser struct {
	io.Reader
	io.Closer
}
