package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/ai"
	"github.com/xxxsen/glbpick/internal/config"
	"github.com/xxxsen/glbpick/internal/filestore"
	"github.com/xxxsen/glbpick/internal/gencache"
	"github.com/xxxsen/glbpick/internal/handler"
	"github.com/xxxsen/glbpick/internal/intent"
	"github.com/xxxsen/glbpick/internal/inventory"
	"github.com/xxxsen/glbpick/internal/job"
	"github.com/xxxsen/glbpick/internal/metrics"
	"github.com/xxxsen/glbpick/internal/middleware"
	"github.com/xxxsen/glbpick/internal/pkg/errcode"
	"github.com/xxxsen/glbpick/internal/pkg/response"
	"github.com/xxxsen/glbpick/internal/schedule"
	"github.com/xxxsen/glbpick/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "glbpick",
		Short: "natural language picker for 3D inventory assets",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run glbpick server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "print the tag vocabulary sent to the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			table, fallback := inventory.LoadOrFallback(context.Background(), cfg.Inventory.Path)
			if fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: using built-in fixture inventory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(table.Vocabulary(cfg.Inventory.VocabularyLimit), "\n"))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd, tagsCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	return cfg, nil
}

func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, 1+len(cfg.Fallbacks))
	primary, err := ai.NewProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	entries = append(entries, ai.GeneratorEntry{
		Name:      primary.Name() + ":" + cfg.Model,
		Generator: ai.NewGenerator(primary, cfg.Model),
	})
	for i, fb := range cfg.Fallbacks {
		p, err := ai.NewProvider(fb.Provider, fb.Data)
		if err != nil {
			return nil, fmt.Errorf("init ai fallback %d: %w", i, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      p.Name() + ":" + fb.Model,
			Generator: ai.NewGenerator(p, fb.Model),
		})
	}
	gen := metrics.WrapTiming(ai.NewGroupGenerator(entries))
	gen = ai.WrapLimit(gen, ai.LimitConfig{
		MaxInflight:   cfg.MaxInflight,
		RatePerSecond: cfg.RateLimit,
		Burst:         cfg.Burst,
	})
	return gencache.WrapLruCacheToGenerator(gen, cfg.CacheSize, time.Duration(cfg.CacheTTL)*time.Second), nil
}

func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("inventory", cfg.Inventory.Path),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
	)

	table, _ := inventory.LoadOrFallback(ctx, cfg.Inventory.Path)
	holder := inventory.NewHolder(table)
	metrics.InventoryRows.Set(float64(table.Len()))

	gen, err := buildGenerator(cfg.AI)
	if err != nil {
		return err
	}
	extractor := intent.NewExtractor(gen, intent.ExtractorConfig{
		Timeout:       time.Duration(cfg.AI.Timeout) * time.Second,
		MaxInputChars: cfg.AI.MaxInputChars,
	})
	picks := service.NewPickService(holder, extractor, service.NewSelector(), cfg.Inventory.VocabularyLimit)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Pages:         handler.NewPageHandler(picks),
		Prompt:        handler.NewPromptHandler(picks),
		Models:        handler.NewModelHandler(store, cfg.FileStore.Extension),
		EnableMetrics: cfg.EnableMetrics,
	}
	if cfg.PromptRateLimit > 0 {
		deps.PromptLimit = middleware.RateLimit(cfg.PromptRateLimit, cfg.PromptRateBurst, func(c *gin.Context) {
			metrics.PromptRequests.WithLabelValues(errcode.OutcomeThrottled).Inc()
			response.Message(c, response.MsgTooMany)
		})
	}

	mws := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.CORS(cfg.CORSOrigins),
	}
	if cfg.EnableCompression {
		mws = append(mws, gzip.Gzip(gzip.DefaultCompression))
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(mws...),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	if cfg.Inventory.ReloadSpec != "" {
		scheduler := schedule.NewCronScheduler()
		if err := scheduler.AddJob(job.NewInventoryReloadJob(holder, cfg.Inventory.Path), cfg.Inventory.ReloadSpec); err != nil {
			return fmt.Errorf("schedule inventory reload: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
