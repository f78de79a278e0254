package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/screws/internal/tokens"
)

const (
	// ModeratorIDKey ключ идентификатора модератора в контексте gin.
	ModeratorIDKey = "moderatorID"
	// ModeratorNameKey ключ имени модератора в контексте gin.
	ModeratorNameKey = "moderatorName"
	// AdminCookieName cookie с токеном администратора.
	AdminCookieName = "admin_token"
)

// TokenVerifier проверяет токен администратора.
type TokenVerifier interface {
	Verify(tokenString string) (*tokens.Identity, error)
}

// AdminAuthMiddleware пропускает только запросы с действительным токеном администратора.
// Токен берется из заголовка Authorization: Bearer, затем из cookie admin_token.
// Если verifier не задан, админка закрыта для всех.
func AdminAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			abortUnauthorized(c, http.StatusUnauthorized, "admin access is not configured")
			return
		}

		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			if cookie, err := c.Cookie(AdminCookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortUnauthorized(c, http.StatusUnauthorized, "authorization required")
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			_ = c.Error(fmt.Errorf("admin auth: %w", err))
			switch {
			case errors.Is(err, tokens.ErrSubjectDenied):
				abortUnauthorized(c, http.StatusForbidden, "access denied")
			case errors.Is(err, tokens.ErrTokenExpired):
				abortUnauthorized(c, http.StatusUnauthorized, "token expired")
			default:
				abortUnauthorized(c, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		c.Set(ModeratorIDKey, identity.ModeratorID)
		c.Set(ModeratorNameKey, identity.Name)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthorized(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
