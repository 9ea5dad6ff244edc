package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/inventory"
	"github.com/xxxsen/glbpick/internal/metrics"
)

// InventoryReloadJob re-reads the inventory file and publishes the new
// snapshot. A failed reload keeps the current snapshot.
type InventoryReloadJob struct {
	holder *inventory.Holder
	path   string
}

func NewInventoryReloadJob(holder *inventory.Holder, path string) *InventoryReloadJob {
	return &InventoryReloadJob{holder: holder, path: path}
}

func (j *InventoryReloadJob) Name() string {
	return "inventory_reload"
}

func (j *InventoryReloadJob) Run(ctx context.Context) error {
	table, err := inventory.LoadFile(ctx, j.path)
	if err != nil {
		return err
	}
	prev := j.holder.Swap(table)
	metrics.InventoryRows.Set(float64(table.Len()))
	prevRows := 0
	if prev != nil {
		prevRows = prev.Len()
	}
	logutil.GetLogger(ctx).Info("inventory reloaded",
		zap.String("path", j.path),
		zap.Int("rows", table.Len()),
		zap.Int("previous_rows", prevRows),
	)
	return nil
}
