// Package metrics Prometheus метрики сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "screws"

// Metrics набор метрик со своим реестром. Реестр не глобальный,
// чтобы несколько экземпляров (например в тестах) не конфликтовали.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	urlsCreated    *prometheus.CounterVec
	redirects      *prometheus.CounterVec
	moderation     *prometheus.CounterVec
	rateLimited    *prometheus.CounterVec
	previewFetched *prometheus.CounterVec
}

// New регистрирует метрики в новом реестре.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Количество HTTP запросов.",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP запросов в секундах.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		urlsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "urls_created_total",
			Help:      "Созданные ссылки. reused=true если вернули существующую запись.",
		}, []string{"reused"}),
		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirect_decisions_total",
			Help:      "Решения по переходам на короткие ссылки.",
		}, []string{"decision"}),
		moderation: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_outcomes_total",
			Help:      "Результаты модерации по кодам.",
		}, []string{"outcome"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Отклоненные лимитером запросы.",
		}, []string{"scope"}),
		previewFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_fetch_total",
			Help:      "Попытки получить превью страницы.",
		}, []string{"result"}),
	}
}

// Registry реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler http обработчик для /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware gin middleware, считает запросы и их длительность.
// В лейбл пути идет шаблон маршрута, а не сам путь.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// URLCreated учитывает создание ссылки.
func (m *Metrics) URLCreated(reused bool) {
	m.urlsCreated.WithLabelValues(strconv.FormatBool(reused)).Inc()
}

// RedirectDecision учитывает решение по переходу.
func (m *Metrics) RedirectDecision(decision string) {
	m.redirects.WithLabelValues(decision).Inc()
}

// ModerationOutcome учитывает результат модерации, n кодов.
func (m *Metrics) ModerationOutcome(outcome string, n int) {
	if n > 0 {
		m.moderation.WithLabelValues(outcome).Add(float64(n))
	}
}

// RateLimited учитывает отклоненный запрос.
func (m *Metrics) RateLimited(scope string) {
	m.rateLimited.WithLabelValues(scope).Inc()
}

// PreviewFetched учитывает попытку получить превью.
func (m *Metrics) PreviewFetched(ok bool) {
	result := "empty"
	if ok {
		result = "ok"
	}
	m.previewFetched.WithLabelValues(result).Inc()
}
