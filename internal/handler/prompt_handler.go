package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/metrics"
	"github.com/xxxsen/glbpick/internal/pkg/errcode"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
	"github.com/xxxsen/glbpick/internal/pkg/response"
	"github.com/xxxsen/glbpick/internal/service"
)

type PromptHandler struct {
	picks *service.PickService
}

func NewPromptHandler(picks *service.PickService) *PromptHandler {
	return &PromptHandler{picks: picks}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// Prompt always answers HTTP 200; failures become conversational messages.
func (h *PromptHandler) Prompt(c *gin.Context) {
	logger := requestLogger(c)
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid prompt body", zap.Error(err))
		metrics.PromptRequests.WithLabelValues(errcode.OutcomeInvalid).Inc()
		response.Message(c, response.MsgNotUnderstood)
		return
	}
	logger.Info("received prompt", zap.String("prompt", req.Prompt))
	res, err := h.picks.Pick(c.Request.Context(), req.Prompt)
	if err != nil {
		outcome, msg := describeFailure(err)
		logger.Warn("prompt not resolved", zap.String("outcome", outcome), zap.Error(err))
		metrics.PromptRequests.WithLabelValues(outcome).Inc()
		response.Message(c, msg)
		return
	}
	metrics.PromptRequests.WithLabelValues(errcode.OutcomeOK).Inc()
	response.Selection(c, res)
}

func describeFailure(err error) (string, string) {
	var noStock *appErr.NoStockError
	switch {
	case errors.As(err, &noStock):
		return errcode.OutcomeNoStock, response.NoStockMessage(noStock.Tag)
	case errors.Is(err, appErr.ErrInvalid):
		return errcode.OutcomeInvalid, response.MsgNotUnderstood
	case errors.Is(err, appErr.ErrInference):
		return errcode.OutcomeInference, response.MsgNotUnderstood
	case errors.Is(err, appErr.ErrParse):
		return errcode.OutcomeParse, response.MsgNotUnderstood
	default:
		return errcode.OutcomeInternal, response.MsgNotUnderstood
	}
}
