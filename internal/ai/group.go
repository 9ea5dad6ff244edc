package ai

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type GeneratorEntry struct {
	Name      string
	Generator IGenerator
}

type groupGenerator struct {
	items []GeneratorEntry
}

// NewGroupGenerator tries each entry in order and returns the first success.
// A single entry is returned unwrapped so the common case makes exactly one
// model call.
func NewGroupGenerator(items []GeneratorEntry) IGenerator {
	valid := make([]GeneratorEntry, 0, len(items))
	for _, item := range items {
		if item.Generator != nil {
			valid = append(valid, item)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0].Generator
	}
	return &groupGenerator{items: valid}
}

func (g *groupGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i, item := range g.items {
		res, err := item.Generator.Generate(ctx, prompt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		logutil.GetLogger(ctx).Warn("generator failed", zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		return "", fmt.Errorf("generator not configured")
	}
	return "", lastErr
}
