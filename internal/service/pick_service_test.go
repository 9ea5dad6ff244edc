package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/glbpick/internal/intent"
	"github.com/xxxsen/glbpick/internal/inventory"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

type fixedGenerator struct {
	out    string
	err    error
	prompt string
}

func (f *fixedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.out, f.err
}

func newPickService(gen *fixedGenerator, limit int) *PickService {
	holder := inventory.NewHolder(chairTable())
	return NewPickService(holder, intent.NewExtractor(gen, intent.ExtractorConfig{}), NewSelectorWithRand(func(n int) int { return n - 1 }), limit)
}

func TestPickResolvesIntent(t *testing.T) {
	gen := &fixedGenerator{out: `Here you go: {"tag": "Chair", "random": true}`}
	svc := newPickService(gen, 0)

	res, err := svc.Pick(context.Background(), "a different seat please")
	require.NoError(t, err)
	require.Equal(t, "chair_c", res.FullID)
	require.Equal(t, "Loading Chair...", res.Message)
	require.Contains(t, gen.prompt, "[Chair, Couch, Office]")
}

func TestPickVocabularyLimit(t *testing.T) {
	gen := &fixedGenerator{out: `{"tag": "Chair"}`}
	svc := newPickService(gen, 2)
	require.Equal(t, []string{"Chair", "Couch"}, svc.Vocabulary())

	_, err := svc.Pick(context.Background(), "seat")
	require.NoError(t, err)
	require.Contains(t, gen.prompt, "[Chair, Couch]")
	require.NotContains(t, gen.prompt, "Office")
}

func TestPickFailures(t *testing.T) {
	_, err := newPickService(&fixedGenerator{out: `{"tag": "Lamp"}`}, 0).Pick(context.Background(), "lamp")
	require.ErrorIs(t, err, appErr.ErrNoStock)

	_, err = newPickService(&fixedGenerator{out: "no idea"}, 0).Pick(context.Background(), "lamp")
	require.ErrorIs(t, err, appErr.ErrParse)

	_, err = newPickService(&fixedGenerator{err: errors.New("down")}, 0).Pick(context.Background(), "lamp")
	require.ErrorIs(t, err, appErr.ErrInference)

	_, err = newPickService(&fixedGenerator{}, 0).Pick(context.Background(), "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestPickUsesSwappedSnapshot(t *testing.T) {
	holder := inventory.NewHolder(chairTable())
	gen := &fixedGenerator{out: `{"tag": "Couch"}`}
	svc := NewPickService(holder, intent.NewExtractor(gen, intent.ExtractorConfig{}), nil, 0)

	res, err := svc.Pick(context.Background(), "sofa")
	require.NoError(t, err)
	require.Equal(t, "couch_a", res.FullID)

	holder.Swap(inventory.Fixture())
	res, err = svc.Pick(context.Background(), "sofa")
	require.NoError(t, err)
	require.Equal(t, "dummy_couch_id", res.FullID)
	require.True(t, svc.Table().Fallback())
}
