package gencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"

	"github.com/xxxsen/glbpick/internal/ai"
)

// WrapLruCacheToGenerator memoizes raw model output per prompt. Errors and
// empty outputs are never cached.
func WrapLruCacheToGenerator(g ai.IGenerator, size int, ttl time.Duration) ai.IGenerator {
	if g == nil || size <= 0 || ttl <= 0 {
		return g
	}
	return &lruGenerator{
		next:  g,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

type lruGenerator struct {
	next  ai.IGenerator
	cache *expirable.LRU[string, string]
}

func (l *lruGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := buildCacheKey(prompt)
	if cached, ok := l.cache.Get(key); ok {
		logutil.GetLogger(ctx).Debug("generator cache hit (lru)")
		return cached, nil
	}
	res, err := l.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res) != "" {
		l.cache.Add(key, res)
	}
	return res, nil
}

func (l *lruGenerator) Len() int {
	return l.cache.Len()
}

func buildCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(prompt)))
	return hex.EncodeToString(sum[:])
}
