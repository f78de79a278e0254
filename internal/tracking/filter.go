// Package tracking поиск и удаление трекинговых параметров из query строки ссылки.
package tracking

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// RegexpPrefix префикс шаблона, который следует трактовать как регулярное выражение.
const RegexpPrefix = "re:"

// DefaultParams трекинговые параметры по умолчанию.
var DefaultParams = []string{ //nolint:gochecknoglobals
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"utm_brand",
	"utm_name",
	"fbclid",
	"gclid",
	"msclkid",
}

// Param пара ключ/значение query строки.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Result результат анализа ссылки.
type Result struct {
	URL            string  `json:"url"`
	IsDirty        bool    `json:"isDirty"`
	TrackingParams []Param `json:"trackingParams"`
	CleanURL       string  `json:"cleanUrl"`
}

// Filter неизменяемый набор шаблонов трекинговых параметров.
// Безопасен для конкурентного использования.
type Filter struct {
	literals map[string]struct{}
	patterns []*regexp.Regexp
}

// NewFilter создает фильтр.
//
// Параметры:
//   - patterns: ключи параметров. Строки с префиксом `re:` компилируются как
//     регулярные выражения, остальные сравниваются без учета регистра.
//
// Возвращает:
//   - *Filter: фильтр
//   - error: ошибка компиляции регулярного выражения
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{literals: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		if expr, ok := strings.CutPrefix(p, RegexpPrefix); ok {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile tracking pattern `%s`: %w", expr, err)
			}
			f.patterns = append(f.patterns, re)
			continue
		}
		f.literals[strings.ToLower(p)] = struct{}{}
	}
	return f, nil
}

// MustNewFilter как NewFilter, но паникует при ошибке.
func MustNewFilter(patterns []string) *Filter {
	f, err := NewFilter(patterns)
	if err != nil {
		panic(err)
	}
	return f
}

// IsTracking является ли ключ трекинговым параметром.
func (f *Filter) IsTracking(key string) bool {
	if _, ok := f.literals[strings.ToLower(key)]; ok {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// Analyze разбирает query строку ссылки и отделяет трекинговые параметры.
// Порядок и кодировка остальных параметров, а также схема, хост, путь
// и фрагмент сохраняются как есть.
func (f *Filter) Analyze(rawURL string) Result {
	result := Result{
		URL:            rawURL,
		CleanURL:       rawURL,
		TrackingParams: []Param{},
	}

	base, fragment, hasFragment := strings.Cut(rawURL, "#")
	prefix, query, hasQuery := strings.Cut(base, "?")
	if !hasQuery || query == "" {
		return result
	}

	var safe []string
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key := unescape(rawKey)
		if !f.IsTracking(key) {
			safe = append(safe, segment)
			continue
		}
		result.TrackingParams = append(result.TrackingParams, Param{Key: key, Value: unescape(rawValue)})
	}

	if len(result.TrackingParams) == 0 {
		return result
	}

	var b strings.Builder
	b.WriteString(prefix)
	if len(safe) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(safe, "&"))
	}
	if hasFragment {
		b.WriteByte('#')
		b.WriteString(fragment)
	}

	result.IsDirty = true
	result.CleanURL = b.String()
	return result
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
