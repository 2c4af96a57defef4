// Package mapping reads and writes the owner-mapping table, the private
// xlsx artifact linking anonymous pool filenames back to participants.
// Regenerating the table invalidates any votes already cast against the
// previous one; nothing here can detect that.
package mapping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/xuri/excelize/v2"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
)

// Column headers of the table. The reconciler matches these byte for byte,
// any other shape is treated as malformed.
const (
	ColumnAnonymousName = "Jüri Dosya Adı"
	ColumnOwner         = "Katılımcı Adı"
	ColumnOriginalName  = "Orijinal Dosya Adı"
)

var ErrMalformed = errors.New("mapping table does not have the expected columns")

// Entry is one row of the table: one pooled file, its owner and the
// filename the owner submitted it under.
type Entry struct {
	AnonymousName string
	Owner         string
	OriginalName  string
}

// Write serializes entries to an xlsx file at path. The file is written to
// a temp name in the same directory and renamed into place, so a failed
// write never leaves a partial table behind.
func Write(path string, entries []Entry) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.Log.Warnf("MAPPING: failed to close workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{ColumnAnonymousName, ColumnOwner, ColumnOriginalName}); err != nil {
		return fmt.Errorf("mapping: write header: %w", err)
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("mapping: row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{e.AnonymousName, e.Owner, e.OriginalName}); err != nil {
			return fmt.Errorf("mapping: row %d: %w", i+2, err)
		}
	}

	suffix, err := gonanoid.New(8)
	if err != nil {
		return fmt.Errorf("mapping: temp name: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), suffix))

	// SaveAs rejects the .tmp extension, so write the workbook bytes to the
	// temp file directly.
	w, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("mapping: save %s: %w", tmp, err)
	}
	if err := f.Write(w); err != nil {
		w.Close()
		if rmErr := os.Remove(tmp); rmErr != nil {
			logging.Log.Warnf("MAPPING: failed to remove temp file %s: %v", tmp, rmErr)
		}
		return fmt.Errorf("mapping: save %s: %w", tmp, err)
	}
	if err := w.Close(); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logging.Log.Warnf("MAPPING: failed to remove temp file %s: %v", tmp, rmErr)
		}
		return fmt.Errorf("mapping: save %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logging.Log.Warnf("MAPPING: failed to remove temp file %s: %v", tmp, rmErr)
		}
		return fmt.Errorf("mapping: publish %s: %w", path, err)
	}
	return nil
}

// Load reads the table at path and returns anonymous filename -> owner.
// A missing file or a table without the expected columns is an error the
// caller is expected to downgrade to a warning, not a reason to stop.
func Load(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapping: open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Log.Warnf("MAPPING: failed to close workbook: %v", err)
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("mapping: read %s: %w", path, err)
	}
	if len(rows) == 0 || len(rows[0]) < 2 || rows[0][0] != ColumnAnonymousName || rows[0][1] != ColumnOwner {
		return nil, ErrMalformed
	}

	owners := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		owners[row[0]] = row[1]
	}
	return owners, nil
}
