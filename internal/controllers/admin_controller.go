package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/screws/internal/controllers/middlewares"
	"github.com/fsdevblog/screws/internal/models"
)

// SearchRequest тело запроса поиска.
type SearchRequest struct {
	Field string `json:"field"`
	Query string `json:"query"`
}

// DeleteRequest тело запроса удаления.
type DeleteRequest struct {
	Codes []string `json:"codes"`
}

// DeleteResponse итог запроса удаления.
type DeleteResponse struct {
	Success bool     `json:"success"`
	Flagged []string `json:"flagged"`
	Deleted []string `json:"deleted"`
}

// AdminController администрирование. Все методы требуют middlewares.AdminAuthMiddleware.
type AdminController struct {
	adminService AdminService
	recorder     Recorder
}

func NewAdminController(adminService AdminService, recorder Recorder) *AdminController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AdminController{
		adminService: adminService,
		recorder:     recorder,
	}
}

// Stats обрабатывает GET /api/admin.
func (a *AdminController) Stats(c *gin.Context) {
	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	stats, err := a.adminService.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Search обрабатывает POST /api/admin.
func (a *AdminController) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Errorf("bind search request: %w", err))
		return
	}

	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	urls, err := a.adminService.Search(ctx, req.Field, req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToClientList(urls))
}

// Delete обрабатывает DELETE /api/admin.
// Запись удаляется, когда ее отметило достаточное число разных модераторов.
func (a *AdminController) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Errorf("bind delete request: %w", err))
		return
	}

	ctx, cancel := requestContext(c, DefaultRequestTimeout)
	defer cancel()

	res, err := a.adminService.Delete(ctx, req.Codes, c.GetString(middlewares.ModeratorIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	a.recorder.ModerationOutcome("flagged", len(res.Flagged))
	a.recorder.ModerationOutcome("deleted", len(res.Deleted))

	c.JSON(http.StatusOK, DeleteResponse{
		Success: true,
		Flagged: res.Flagged,
		Deleted: res.Deleted,
	})
}

// Backup обрабатывает GET /api/admin/backup. Ответ отдается как файл.
func (a *AdminController) Backup(c *gin.Context) {
	ctx, cancel := requestContext(c, SlowRequestTimeout)
	defer cancel()

	backup, key, err := a.adminService.Backup(ctx, c.GetString(middlewares.ModeratorNameKey))
	if err != nil {
		respondError(c, err)
		return
	}
	if key != "" {
		c.Header("X-Backup-Key", key)
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="screws-backup-%s.json"`, backup.Date.UTC().Format("20060102T150405Z")))
	c.JSON(http.StatusOK, backup)
}
