package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/screws/internal/services"
)

// Ошибки уровня http.
var (
	ErrRecordNotFound = errors.New("record not found") // Запись не найдена
	ErrInternal       = errors.New("internal error")   // Прочая ошибка
	ErrBadRequest     = errors.New("bad request")      // Тело запроса не разобрано
)

// statusFor сопоставляет ошибку сервиса http статусу и сообщению для клиента.
func statusFor(err error) (int, string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, vErr.Reason
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity, "validation failed"
	case errors.Is(err, services.ErrCodeAlreadyTaken):
		return http.StatusConflict, "Code already in use"
	case errors.Is(err, services.ErrRecordNotFound):
		return http.StatusNotFound, "URL not found"
	case errors.Is(err, services.ErrPasswordRequired):
		return http.StatusUnauthorized, "Password required"
	case errors.Is(err, services.ErrIncorrectPassword):
		return http.StatusUnauthorized, "Incorrect password"
	case errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	case errors.Is(err, services.ErrFetchFailed):
		return http.StatusBadGateway, "Failed to fetch URL"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, ErrInternal.Error()
	}
}

// respondError пишет ошибку в ответ в виде {"message": ...} и регистрирует ее в gin для журнала.
// Для ошибок пароля добавляется passwordProtected, клиент по нему показывает форму ввода.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, message := statusFor(err)

	body := gin.H{"message": message}
	if errors.Is(err, services.ErrPasswordRequired) || errors.Is(err, services.ErrIncorrectPassword) {
		body["passwordProtected"] = true
	}
	c.AbortWithStatusJSON(status, body)
}

func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": ErrBadRequest.Error()})
}
