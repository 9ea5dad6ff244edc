package intent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/glbpick/internal/ai"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

type stubGenerator struct {
	out    string
	err    error
	delay  time.Duration
	prompt string
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.out, s.err
}

func TestExtractBuildsPrompt(t *testing.T) {
	gen := &stubGenerator{out: `{"tag": "Chair", "random": false}`}
	ex := NewExtractor(gen, ExtractorConfig{Timeout: time.Second})

	raw, err := ex.Extract(context.Background(), "  I need somewhere to sit  ", []string{"Chair", "Couch"})
	require.NoError(t, err)
	require.Equal(t, gen.out, raw)
	require.Contains(t, gen.prompt, "[Chair, Couch]")
	require.Contains(t, gen.prompt, `Example JSON: {"tag": "Chair", "random": false}`)
	require.True(t, strings.HasSuffix(gen.prompt, "User: I need somewhere to sit"))
}

func TestExtractInvalidInput(t *testing.T) {
	gen := &stubGenerator{out: "{}"}
	ex := NewExtractor(gen, ExtractorConfig{MaxInputChars: 5})

	_, err := ex.Extract(context.Background(), "   ", nil)
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = ex.Extract(context.Background(), "chairs!", nil)
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.Equal(t, 0, gen.calls)
}

func TestExtractInferenceErrors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewExtractor(&stubGenerator{err: boom}, ExtractorConfig{}).Extract(context.Background(), "chair", nil)
	require.ErrorIs(t, err, appErr.ErrInference)
	require.ErrorIs(t, err, boom)

	_, err = NewExtractor(&stubGenerator{out: "  "}, ExtractorConfig{}).Extract(context.Background(), "chair", nil)
	require.ErrorIs(t, err, appErr.ErrInference)

	_, err = NewExtractor(nil, ExtractorConfig{}).Extract(context.Background(), "chair", nil)
	require.ErrorIs(t, err, appErr.ErrInference)
	require.ErrorIs(t, err, ai.ErrUnavailable)
}

func TestExtractTimeout(t *testing.T) {
	gen := &stubGenerator{out: "{}", delay: time.Second}
	ex := NewExtractor(gen, ExtractorConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := ex.Extract(context.Background(), "chair", nil)
	require.ErrorIs(t, err, appErr.ErrInference)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}
