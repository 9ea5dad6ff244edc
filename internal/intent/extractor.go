package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/ai"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

type ExtractorConfig struct {
	Timeout       time.Duration
	MaxInputChars int
}

// Extractor asks the model for a {tag, random} object. It returns the raw
// model text; Parse turns it into an Intent.
type Extractor struct {
	gen ai.IGenerator
	cfg ExtractorConfig
}

func NewExtractor(gen ai.IGenerator, cfg ExtractorConfig) *Extractor {
	return &Extractor{gen: gen, cfg: cfg}
}

func (e *Extractor) Extract(ctx context.Context, userText string, vocabulary []string) (string, error) {
	text, err := e.cleanInput(userText)
	if err != nil {
		return "", err
	}
	if e.gen == nil {
		return "", fmt.Errorf("%w: %w", appErr.ErrInference, ai.ErrUnavailable)
	}
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	prompt := buildPrompt(text, vocabulary)
	start := time.Now()
	resp, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", appErr.ErrInference, err)
	}
	logutil.GetLogger(ctx).Debug("model raw response",
		zap.String("response", resp),
		zap.Duration("cost", time.Since(start)),
	)
	if strings.TrimSpace(resp) == "" {
		return "", fmt.Errorf("%w: empty ai response", appErr.ErrInference)
	}
	return resp, nil
}

func (e *Extractor) cleanInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", appErr.ErrInvalid
	}
	if max := e.cfg.MaxInputChars; max > 0 && len([]rune(trimmed)) > max {
		return "", appErr.ErrInvalid
	}
	return trimmed, nil
}
