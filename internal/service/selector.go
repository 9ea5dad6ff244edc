package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/xxxsen/glbpick/internal/inventory"
	"github.com/xxxsen/glbpick/internal/model"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

// Selector picks one row for an intent.
type Selector struct {
	intn func(n int) int
}

func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewSelectorWithRand uses intn for random picks; intn(n) must return a value
// in [0, n).
func NewSelectorWithRand(intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{intn: intn}
}

func (s *Selector) Select(table *inventory.Table, in model.Intent) (*model.SelectionResult, error) {
	matches := table.Match(in.Tag)
	if len(matches) == 0 {
		return nil, &appErr.NoStockError{Tag: in.Tag}
	}
	chosen := matches[0]
	if in.Random {
		chosen = matches[s.intn(len(matches))]
	}
	return &model.SelectionResult{
		FullID:  chosen.ID,
		Message: fmt.Sprintf("Loading %s...", in.Tag),
	}, nil
}
