package middlewares

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// MaxInflatedBody предел размера распакованного тела запроса.
const MaxInflatedBody = 1 << 20

var gzipPool = sync.Pool{ //nolint:gochecknoglobals
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipWriter обертка над gin.ResponseWriter для сжатия ответов в формате gzip.
// Решение о сжатии принимается при первой записи, когда Content-Type уже известен.
type gzipWriter struct {
	gin.ResponseWriter
	gz      *gzip.Writer
	decided bool
}

func (g *gzipWriter) decide() {
	if g.decided {
		return
	}
	g.decided = true

	h := g.Header()
	if h.Get("Content-Encoding") != "" || strings.HasPrefix(h.Get("Content-Type"), "image/") {
		return
	}
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")

	gz, _ := gzipPool.Get().(*gzip.Writer)
	gz.Reset(g.ResponseWriter)
	g.gz = gz
}

// Write реализует интерфейс io.Writer.
//
// Параметры:
//   - data: данные для записи
//
// Возвращает:
//   - int: количество записанных байт
//   - error: ошибка записи
func (g *gzipWriter) Write(data []byte) (int, error) {
	g.decide()
	if g.gz == nil {
		return g.ResponseWriter.Write(data) //nolint:wrapcheck
	}
	return g.gz.Write(data) //nolint:wrapcheck
}

// WriteString реализует интерфейс io.StringWriter.
func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) close() error {
	if g.gz == nil {
		return nil
	}
	err := g.gz.Close()
	g.gz.Reset(io.Discard)
	gzipPool.Put(g.gz)
	g.gz = nil
	return err //nolint:wrapcheck
}

// GzipMiddleware создает middleware для сжатия ответов
// и распаковки запросов в формате gzip.
//
// Для ответов:
//   - Проверяет поддержку gzip в заголовке Accept-Encoding
//   - Изображения (QR коды) отдаются без сжатия
//
// Для запросов:
//   - Обрабатывает только POST, PUT, PATCH и DELETE запросы с Content-Encoding: gzip
//   - Распакованное тело больше MaxInflatedBody отклоняется с 413
//
// Возвращает:
//   - gin.HandlerFunc: middleware функция
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !readGzip(ctx) {
			return
		}
		if !strings.Contains(ctx.Request.Header.Get("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}

		gzw := &gzipWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = gzw
		defer func() {
			if closeErr := gzw.close(); closeErr != nil {
				_ = ctx.Error(fmt.Errorf("close gzip writer: %w", closeErr))
			}
		}()
		ctx.Next()
	}
}

// readGzip распаковывает тело запроса, если оно сжато.
// Возвращает false, если запрос уже прерван.
func readGzip(ctx *gin.Context) bool {
	methods := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	if !slices.Contains(methods, ctx.Request.Method) ||
		!strings.Contains(ctx.Request.Header.Get("Content-Encoding"), "gzip") {
		return true
	}

	gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
	if gzErr != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", gzErr))
		ctx.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	defer func() {
		if closeErr := gzReader.Close(); closeErr != nil {
			_ = ctx.Error(fmt.Errorf("close gzip reader: %w", closeErr))
		}
	}()

	bodyBytes, err := io.ReadAll(io.LimitReader(gzReader, MaxInflatedBody+1))
	if err != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", err))
		ctx.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	if len(bodyBytes) > MaxInflatedBody {
		ctx.AbortWithStatus(http.StatusRequestEntityTooLarge)
		return false
	}

	ctx.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	ctx.Request.Header.Del("Content-Encoding")
	ctx.Request.ContentLength = int64(len(bodyBytes))
	return true
}
