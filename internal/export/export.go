// Package export serializes a session's records into downloadable tabular
// documents. Builders operate on store snapshots and never mutate the
// session, so an export running concurrently with a capture is safe.
package export

import (
	"errors"
	"fmt"

	"github.com/rackwalk/rackwalk/internal/models"
	"github.com/rackwalk/rackwalk/internal/storage"
	"github.com/xuri/excelize/v2"
)

// ErrNoItems is returned when the session exists but holds no records.
// An empty session is an export error, not a header-only file.
var ErrNoItems = errors.New("no items to export")

const (
	sheetName  = "Hardware Inventory"
	timeLayout = "2006-01-02 15:04:05"
)

var headers = []string{"#", "Brand", "Capacity", "Generation", "Speed (MHz)", "Scanned At"}

// Builder materializes session exports from store snapshots.
type Builder struct {
	store *storage.SessionStore
}

func NewBuilder(store *storage.SessionStore) *Builder {
	return &Builder{store: store}
}

// Build returns the session as an XLSX workbook: a header row, then one
// row per record in capture order with a 1-based index recomputed at
// export time. Re-exporting an unchanged session yields byte-identical
// output; the workbook's document timestamps are pinned to the session's
// start time rather than the wall clock.
func (b *Builder) Build(sessionID string) ([]byte, error) {
	session, err := b.store.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Items) == 0 {
		return nil, ErrNoItems
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		if err := setCell(f, col+1, 1, header); err != nil {
			return nil, err
		}
		widths[col] = len(header)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", boldStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for idx, item := range session.Items {
		row := idx + 2
		values := rowValues(idx+1, item)
		for col, value := range values {
			if err := setCell(f, col+1, row, value); err != nil {
				return nil, err
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width+2)); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// Fixed doc timestamps keep repeated exports byte-identical.
	created := session.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	if err := f.SetDocProps(&excelize.DocProperties{
		Created:  created,
		Modified: created,
		Creator:  "rackwalk",
		Title:    sheetName,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(index int, item models.Record) []string {
	return []string{
		fmt.Sprintf("%d", index),
		item.Brand,
		item.Capacity,
		item.Generation,
		item.Speed,
		item.Timestamp.UTC().Format(timeLayout),
	}
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell name: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
