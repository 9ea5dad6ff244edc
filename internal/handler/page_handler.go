package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/glbpick/internal/pkg/response"
	"github.com/xxxsen/glbpick/internal/service"
	"github.com/xxxsen/glbpick/internal/web"
)

type PageHandler struct {
	picks *service.PickService
}

func NewPageHandler(picks *service.PickService) *PageHandler {
	return &PageHandler{picks: picks}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func (h *PageHandler) Tags(c *gin.Context) {
	response.Success(c, gin.H{"tags": h.picks.Vocabulary()})
}

func (h *PageHandler) Health(c *gin.Context) {
	table := h.picks.Table()
	response.Success(c, gin.H{
		"status":   "ok",
		"rows":     table.Len(),
		"fallback": table.Fallback(),
	})
}
