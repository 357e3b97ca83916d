package export

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
	"github.com/rackwalk/rackwalk/internal/models"
)

// inventoryRow is the parquet schema for one exported record.
type inventoryRow struct {
	Index      int32  `parquet:"index"`
	Brand      string `parquet:"brand"`
	Capacity   string `parquet:"capacity"`
	Generation string `parquet:"generation"`
	Speed      string `parquet:"speed"`
	ScannedAt  string `parquet:"scanned_at"`
}

// BuildParquet returns the session as a parquet file with the same row
// order and column set as the XLSX export, for downstream analysis
// tooling.
func (b *Builder) BuildParquet(sessionID string) ([]byte, error) {
	session, err := b.store.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Items) == 0 {
		return nil, ErrNoItems
	}

	rows := make([]inventoryRow, 0, len(session.Items))
	for idx, item := range session.Items {
		rows = append(rows, toRow(idx+1, item))
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[inventoryRow](&buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return buf.Bytes(), nil
}

func toRow(index int, item models.Record) inventoryRow {
	return inventoryRow{
		Index:      int32(index),
		Brand:      item.Brand,
		Capacity:   item.Capacity,
		Generation: item.Generation,
		Speed:      item.Speed,
		ScannedAt:  item.Timestamp.UTC().Format(timeLayout),
	}
}
