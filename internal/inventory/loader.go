package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/glbpick/internal/model"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

const (
	ColumnID       = "fullId"
	ColumnCategory = "category"
)

type rawRow struct {
	line       int
	id         string
	categories []string
}

// LoadFile reads an inventory file. CSV is the default format; files ending
// in .json are decoded as an array of {"fullId", "category"} objects.
// Every failure wraps ErrLoad.
func LoadFile(ctx context.Context, path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", appErr.ErrLoad, path, err)
	}
	var raws []rawRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raws, err = decodeJSON(data)
	default:
		raws, err = decodeCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", appErr.ErrLoad, path, err)
	}
	rows := normalizeRows(ctx, raws)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty dataset", appErr.ErrLoad, path)
	}
	return NewTable(rows, path), nil
}

// LoadOrFallback loads path and falls back to the built-in fixture when
// loading fails. The returned bool reports whether the fixture is in use.
func LoadOrFallback(ctx context.Context, path string) (*Table, bool) {
	logger := logutil.GetLogger(ctx).With(zap.String("path", path))
	table, err := LoadFile(ctx, path)
	if err != nil {
		logger.Warn("inventory not loaded, serving built-in fixture", zap.Error(err))
		return Fixture(), true
	}
	logger.Info("inventory loaded", zap.Int("rows", table.Len()), zap.Int("tags", len(table.vocab)))
	return table, false
}

func decodeCSV(data []byte) ([]rawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idIdx, catIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, ColumnID):
			idIdx = i
		case strings.EqualFold(name, ColumnCategory):
			catIdx = i
		}
	}
	if idIdx < 0 || catIdx < 0 {
		return nil, fmt.Errorf("missing required columns %q and %q", ColumnID, ColumnCategory)
	}
	var out []rawRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := rawRow{line: line}
		if idIdx < len(record) {
			row.id = record[idIdx]
		}
		if catIdx < len(record) {
			row.categories = ParseCategories(record[catIdx])
		}
		out = append(out, row)
	}
	return out, nil
}

func decodeJSON(data []byte) ([]rawRow, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make([]rawRow, 0, len(items))
	for i, item := range items {
		rawID, okID := item[ColumnID]
		rawCat, okCat := item[ColumnCategory]
		if !okID || !okCat {
			return nil, fmt.Errorf("item %d: missing required fields %q and %q", i, ColumnID, ColumnCategory)
		}
		row := rawRow{line: i + 1}
		if err := json.Unmarshal(rawID, &row.id); err != nil {
			return nil, fmt.Errorf("item %d: %s: %w", i, ColumnID, err)
		}
		cats, err := decodeCategoryValue(rawCat)
		if err != nil {
			return nil, fmt.Errorf("item %d: %s: %w", i, ColumnCategory, err)
		}
		row.categories = cats
		out = append(out, row)
	}
	return out, nil
}

func decodeCategoryValue(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return normalizeLabels(list), nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("expect string or string array")
	}
	return ParseCategories(text), nil
}

// ParseCategories turns a category cell into a label list. A bracketed list
// literal such as ["Chair","Office"] or ['Chair', 'Office'] is taken item by
// item; anything else is split on commas.
func ParseCategories(cell string) []string {
	cell = strings.TrimSpace(cell)
	if strings.HasPrefix(cell, "[") && strings.HasSuffix(cell, "]") {
		var list []string
		if err := json.Unmarshal([]byte(cell), &list); err == nil {
			return normalizeLabels(list)
		}
		cell = cell[1 : len(cell)-1]
	}
	parts := strings.Split(cell, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
			p = p[1 : len(p)-1]
		}
		parts[i] = p
	}
	return normalizeLabels(parts)
}

func normalizeLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, label := range in {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

func normalizeRows(ctx context.Context, raws []rawRow) []model.InventoryRow {
	logger := logutil.GetLogger(ctx)
	rows := make([]model.InventoryRow, 0, len(raws))
	ids := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		id := strings.TrimSpace(raw.id)
		if id == "" {
			logger.Warn("skip inventory row without id", zap.Int("line", raw.line))
			continue
		}
		if len(raw.categories) == 0 {
			logger.Warn("skip inventory row without categories", zap.Int("line", raw.line), zap.String("id", id))
			continue
		}
		if _, ok := ids[id]; ok {
			logger.Warn("skip duplicate inventory id", zap.Int("line", raw.line), zap.String("id", id))
			continue
		}
		ids[id] = struct{}{}
		rows = append(rows, model.InventoryRow{ID: id, Categories: raw.categories})
	}
	return rows
}
