package handler_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/glbpick/internal/ai"
	"github.com/xxxsen/glbpick/internal/config"
	"github.com/xxxsen/glbpick/internal/filestore"
	"github.com/xxxsen/glbpick/internal/handler"
	"github.com/xxxsen/glbpick/internal/intent"
	"github.com/xxxsen/glbpick/internal/inventory"
	"github.com/xxxsen/glbpick/internal/middleware"
	"github.com/xxxsen/glbpick/internal/model"
	"github.com/xxxsen/glbpick/internal/pkg/response"
	"github.com/xxxsen/glbpick/internal/service"
)

type routerOptions struct {
	responses   []string
	promptLimit float64
}

func setupRouter(t *testing.T, opts routerOptions) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	holder := inventory.NewHolder(inventory.NewTable([]model.InventoryRow{
		{ID: "dummy_chair_id", Categories: []string{"Chair", "Office"}},
		{ID: "dummy_couch_id", Categories: []string{"Couch", "Living"}},
	}, "test"))

	var gen ai.IGenerator
	if len(opts.responses) > 0 {
		gen = ai.NewGenerator(ai.NewLangchainProvider("fake", fake.NewFakeLLM(opts.responses), 0), "test-model")
	}
	extractor := intent.NewExtractor(gen, intent.ExtractorConfig{MaxInputChars: 200})
	picks := service.NewPickService(holder, extractor, service.NewSelectorWithRand(func(n int) int { return 0 }), 0)

	assetDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "dummy_chair_id.glb"), []byte("glTF-binary"), 0o644))
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{
			"dir": assetDir,
		},
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Pages:         handler.NewPageHandler(picks),
		Prompt:        handler.NewPromptHandler(picks),
		Models:        handler.NewModelHandler(store, ".glb"),
		EnableMetrics: true,
	}
	if opts.promptLimit > 0 {
		deps.PromptLimit = middleware.RateLimit(opts.promptLimit, 1, func(c *gin.Context) {
			response.Message(c, response.MsgTooMany)
		})
	}

	engine, err := webapi.NewEngine(
		"/",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine
}
