package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/middleware"
)

func requestLogger(c *gin.Context) *zap.Logger {
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	return logutil.GetLogger(c.Request.Context()).With(
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
}
