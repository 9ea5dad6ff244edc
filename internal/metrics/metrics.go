package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xxxsen/glbpick/internal/ai"
)

var (
	PromptRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glbpick_prompt_requests_total",
			Help: "Total number of /prompt requests by outcome",
		},
		[]string{"outcome"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glbpick_model_call_duration_seconds",
			Help:    "Duration of language model calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"result"},
	)

	AssetRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glbpick_asset_requests_total",
			Help: "Total number of /model requests by status code",
		},
		[]string{"status"},
	)

	InventoryRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "glbpick_inventory_rows",
			Help: "Rows in the active inventory snapshot",
		},
	)
)

type timedGenerator struct {
	next ai.IGenerator
}

// WrapTiming records every call to next in ModelCallDuration.
func WrapTiming(next ai.IGenerator) ai.IGenerator {
	if next == nil {
		return nil
	}
	return &timedGenerator{next: next}
}

func (t *timedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	res, err := t.next.Generate(ctx, prompt)
	result := "ok"
	if err != nil {
		result = "error"
	}
	ModelCallDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return res, err
}
