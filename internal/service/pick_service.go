package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/intent"
	"github.com/xxxsen/glbpick/internal/inventory"
	"github.com/xxxsen/glbpick/internal/model"
)

const DefaultVocabularyLimit = 150

// PickService turns free text into an inventory pick:
// extract, parse, then select against the current snapshot.
type PickService struct {
	inventory  *inventory.Holder
	extractor  *intent.Extractor
	selector   *Selector
	vocabLimit int
}

func NewPickService(inv *inventory.Holder, extractor *intent.Extractor, selector *Selector, vocabLimit int) *PickService {
	if vocabLimit <= 0 {
		vocabLimit = DefaultVocabularyLimit
	}
	if selector == nil {
		selector = NewSelector()
	}
	return &PickService{
		inventory:  inv,
		extractor:  extractor,
		selector:   selector,
		vocabLimit: vocabLimit,
	}
}

func (s *PickService) Vocabulary() []string {
	return s.inventory.Table().Vocabulary(s.vocabLimit)
}

func (s *PickService) Table() *inventory.Table {
	return s.inventory.Table()
}

func (s *PickService) Pick(ctx context.Context, text string) (*model.SelectionResult, error) {
	logger := logutil.GetLogger(ctx)
	table := s.inventory.Table()
	raw, err := s.extractor.Extract(ctx, text, table.Vocabulary(s.vocabLimit))
	if err != nil {
		return nil, err
	}
	in, err := intent.Parse(raw)
	if err != nil {
		logger.Warn("unparseable model output", zap.String("response", raw), zap.Error(err))
		return nil, err
	}
	logger.Info("intent resolved", zap.String("tag", in.Tag), zap.Bool("random", in.Random))
	return s.selector.Select(table, in)
}
