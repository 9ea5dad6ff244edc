package ai

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

type LimitConfig struct {
	// MaxInflight bounds concurrent model calls; zero disables the bound.
	MaxInflight int
	// RatePerSecond and Burst throttle call starts; zero rate disables it.
	RatePerSecond float64
	Burst         int
}

type limitedGenerator struct {
	next    IGenerator
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// WrapLimit bounds how many calls reach next at once and how fast they
// start. Waiting is aborted when ctx ends.
func WrapLimit(next IGenerator, cfg LimitConfig) IGenerator {
	if next == nil || (cfg.MaxInflight <= 0 && cfg.RatePerSecond <= 0) {
		return next
	}
	g := &limitedGenerator{next: next}
	if cfg.MaxInflight > 0 {
		g.sem = semaphore.NewWeighted(int64(cfg.MaxInflight))
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return g
}

func (g *limitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.sem != nil {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return "", err
		}
		defer g.sem.Release(1)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return g.next.Generate(ctx, prompt)
}
