package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToolRequest тело запросов инструментов.
type ToolRequest struct {
	URL string `json:"url"`
}

// ToolsController инструменты проверки ссылок: очистка от трекинга и раскрутка редиректов.
type ToolsController struct {
	urlService URLService
}

func NewToolsController(urlService URLService) *ToolsController {
	return &ToolsController{urlService: urlService}
}

// Clean обрабатывает POST /api/tools/clean.
func (t *ToolsController) Clean(c *gin.Context) {
	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Errorf("bind clean request: %w", err))
		return
	}

	res, err := t.urlService.Clean(req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Unscrew обрабатывает POST /api/tools/unscrew. Запрос уходит на внешний сайт.
func (t *ToolsController) Unscrew(c *gin.Context) {
	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Errorf("bind unscrew request: %w", err))
		return
	}

	ctx, cancel := requestContext(c, SlowRequestTimeout)
	defer cancel()

	res, err := t.urlService.Unscrew(ctx, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
