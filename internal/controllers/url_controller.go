package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/qr"
	"github.com/fsdevblog/screws/internal/redirect"
	"github.com/fsdevblog/screws/internal/services"
)

const (
	// SkipConfirmationCookie cookie, при наличии которой промежуточная страница не показывается.
	SkipConfirmationCookie = "skip_redirect_confirmation"
	skipConfirmationMaxAge = 30 * 24 * time.Hour

	minQRSize = 64
	maxQRSize = 1024
)

// CreateURLRequest тело запроса создания ссылки.
type CreateURLRequest struct {
	LongURL         string `json:"longUrl"`
	Code            string `json:"code"`
	ExpirationHours *int   `json:"expirationHours"`
	Password        string `json:"password"`
}

// PasswordRequest тело запроса с паролем.
type PasswordRequest struct {
	Password *string `json:"password"`
}

// URLResponse запись для клиента вместе с готовой короткой ссылкой.
type URLResponse struct {
	models.ClientURL
	ShortURL string `json:"shortUrl"`
}

// URLController создание ссылок и переходы по ним.
type URLController struct {
	urlService URLService
	recorder   Recorder
}

func NewURLController(urlService URLService, recorder Recorder) *URLController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &URLController{
		urlService: urlService,
		recorder:   recorder,
	}
}

// Create обрабатывает POST /api/url.
// Принимает JSON CreateURLRequest, либо plain text тело с длинной ссылкой.
//
// Ответы:
//   - 201 новая запись
//   - 200 повторно использована существующая запись с той же ссылкой
//   - 409 код занят, 422 ошибка валидации
func (u *URLController) Create(c *gin.Context) {
	var req CreateURLRequest
	if isJSONRequest(c) {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, fmt.Errorf("bind create request: %w", err))
			return
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respondBadRequest(c, fmt.Errorf("read create request: %w", err))
			return
		}
		req.LongURL = string(body)
	}

	expiration := services.NoExpiration
	if req.ExpirationHours != nil {
		expiration = *req.ExpirationHours
	}

	ctx, cancel := requestContext(c, SlowRequestTimeout)
	defer cancel()

	rec, reused, err := u.urlService.Create(ctx, services.CreateParams{
		LongURL:         req.LongURL,
		Code:            req.Code,
		ExpirationHours: expiration,
		Password:        req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	u.recorder.URLCreated(reused)

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	c.JSON(status, u.response(rec))
}

// Lookup обрабатывает GET|POST /api/url/:code.
// POST принимает пароль в теле PasswordRequest.
func (u *URLController) Lookup(c *gin.Context) {
	var req PasswordRequest
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBadRequest(c, fmt.Errorf("bind lookup request: %w", err))
			return
		}
	}

	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	rec, err := u.urlService.Lookup(ctx, c.Param("code"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.response(rec))
}

// Redirect обрабатывает GET /:code.
//
// Ответы:
//   - 307 на длинную ссылку, если подтверждение не требуется
//   - 200 с данными промежуточной страницы services.Interstitial
//   - 401 с passwordProtected, если ссылка защищена паролем
//   - 404 если кода нет или срок истек
func (u *URLController) Redirect(c *gin.Context) {
	skip, _ := c.Cookie(SkipConfirmationCookie)

	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	d, err := u.urlService.Resolve(ctx, c.Param("code"), redirect.RequestContext{
		SkipConfirmation: skip == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	u.recorder.RedirectDecision(d.Kind.String())

	switch d.Kind {
	case redirect.SilentRedirect, redirect.ImmediateRedirect:
		c.Header("Cache-Control", "no-store")
		c.Redirect(http.StatusTemporaryRedirect, d.LongURL)
	case redirect.Interstitial:
		view, viewErr := u.urlService.BuildInterstitial(d.Record)
		if viewErr != nil {
			respondError(c, viewErr)
			return
		}
		c.JSON(http.StatusOK, view)
	case redirect.PasswordRequired:
		respondError(c, services.ErrPasswordRequired)
	case redirect.NotFound:
		respondError(c, fmt.Errorf("%w: %w", services.ErrRecordNotFound, ErrRecordNotFound))
	default:
		respondError(c, fmt.Errorf("unexpected decision %s", d.Kind))
	}
}

// QR обрабатывает GET /api/url/:code/qr. Размер задается параметром size.
func (u *URLController) QR(c *gin.Context) {
	size := qr.DefaultSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minQRSize || parsed > maxQRSize {
			respondError(c, &services.ValidationError{
				Reason: fmt.Sprintf("size must be between %d and %d", minQRSize, maxQRSize),
			})
			return
		}
		size = parsed
	}

	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	png, err := u.urlService.QR(ctx, c.Param("code"), size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// SkipConfirmation обрабатывает POST /api/preferences/skip-confirmation.
func (u *URLController) SkipConfirmation(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SkipConfirmationCookie, "true", int(skipConfirmationMaxAge.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"skipConfirmation": true})
}

// RequireConfirmation обрабатывает DELETE /api/preferences/skip-confirmation.
func (u *URLController) RequireConfirmation(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SkipConfirmationCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"skipConfirmation": false})
}

func (u *URLController) response(rec *models.URL) URLResponse {
	return URLResponse{
		ClientURL: rec.ToClient(),
		ShortURL:  u.urlService.ShortURL(rec.Code),
	}
}
