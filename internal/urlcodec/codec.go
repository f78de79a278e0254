// Package urlcodec нормализация и валидация длинных ссылок и коротких кодов.
package urlcodec

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Ошибки валидации ссылки.
var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrSelfReference = errors.New("url points to this service")
	ErrBlockedDomain = errors.New("url domain is blocked")
)

// urlRegexp ограничительная грамматика ссылки: домен с зоной 2-12 символов,
// схема необязательна.
var urlRegexp = regexp.MustCompile(
	`^((http|https)://)?[-a-zA-Z0-9@:%._+~#=]{2,256}\.[a-z]{2,12}\b([-a-zA-Z0-9@:%_+.~#?&/=]*)$`,
)

var safeCodeRegexp = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Normalize добавляет `https://`, если у ссылки нет схемы http(s).
func Normalize(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// IsSafeCode пустая строка, либо только латиница, цифры и дефис.
func IsSafeCode(code string) bool {
	return code == "" || safeCodeRegexp.MatchString(code)
}

// Validator проверяет длинные ссылки перед сокращением.
type Validator struct {
	selfHost       string
	blockedDomains []string
}

// NewValidator создает валидатор.
//
// Параметры:
//   - baseURL: базовый адрес сервиса, ссылки на него сокращать нельзя
//   - blockedDomains: подстроки доменов, запрещенных к сокращению
//
// Возвращает:
//   - *Validator: валидатор
func NewValidator(baseURL string, blockedDomains []string) *Validator {
	host := strings.ToLower(baseURL)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	blocked := make([]string, 0, len(blockedDomains))
	for _, d := range blockedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			blocked = append(blocked, d)
		}
	}
	return &Validator{selfHost: host, blockedDomains: blocked}
}

// IsValid сокращенная форма Validate.
func (v *Validator) IsValid(rawURL string) bool {
	return v.Validate(rawURL) == nil
}

// Validate проверяет ссылку и возвращает причину отказа.
func (v *Validator) Validate(rawURL string) error {
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "javascript:") || !urlRegexp.MatchString(rawURL) {
		return ErrInvalidURL
	}

	if parsed, err := url.Parse(Normalize(rawURL)); err != nil || parsed.Hostname() == "localhost" {
		return ErrInvalidURL
	}

	normalized := strings.ToLower(Normalize(rawURL))
	if v.selfHost != "" && strings.Contains(normalized, v.selfHost) {
		return ErrSelfReference
	}

	for _, d := range v.blockedDomains {
		if strings.Contains(normalized, d) {
			return ErrBlockedDomain
		}
	}
	return nil
}
