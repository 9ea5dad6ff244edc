package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Pages  *PageHandler
	Prompt *PromptHandler
	Models *ModelHandler
	// PromptLimit guards /prompt; nil disables throttling.
	PromptLimit   gin.HandlerFunc
	EnableMetrics bool
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/", deps.Pages.Index)
	api.GET("/tags", deps.Pages.Tags)
	api.GET("/healthz", deps.Pages.Health)
	api.GET("/model/*id", deps.Models.Get)

	if deps.PromptLimit != nil {
		api.POST("/prompt", deps.PromptLimit, deps.Prompt.Prompt)
	} else {
		api.POST("/prompt", deps.Prompt.Prompt)
	}

	if deps.EnableMetrics {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
