package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/filestore"
	"github.com/xxxsen/glbpick/internal/metrics"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
	"github.com/xxxsen/glbpick/internal/pkg/response"
)

const glbContentType = "model/gltf-binary"

type ModelHandler struct {
	store     filestore.Store
	extension string
}

func NewModelHandler(store filestore.Store, extension string) *ModelHandler {
	return &ModelHandler{store: store, extension: extension}
}

// Get serves <id><extension>. The route is a catch-all so that ids holding
// separators reach the check below and get a 400 instead of a routing 404.
func (h *ModelHandler) Get(c *gin.Context) {
	id := strings.TrimPrefix(c.Param("id"), "/")
	if err := filestore.ValidateKey(id); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid ID")
		return
	}
	file, err := h.store.Open(c.Request.Context(), id+h.extension)
	if err != nil {
		switch {
		case appErr.IsNotFound(err):
			h.fail(c, http.StatusNotFound, "Model not found")
		case errors.Is(err, appErr.ErrUnsafePath):
			h.fail(c, http.StatusBadRequest, "Invalid ID")
		default:
			requestLogger(c).Error("open model failed", zap.String("id", id), zap.Error(err))
			h.fail(c, http.StatusInternalServerError, "Internal error")
		}
		return
	}
	defer file.Close()
	metrics.AssetRequests.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	c.DataFromReader(http.StatusOK, -1, h.contentType(), file, nil)
}

func (h *ModelHandler) contentType() string {
	if strings.EqualFold(h.extension, ".glb") {
		return glbContentType
	}
	if ct := mime.TypeByExtension(h.extension); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (h *ModelHandler) fail(c *gin.Context, status int, message string) {
	metrics.AssetRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	response.Error(c, status, message)
}
