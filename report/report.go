// Package report writes the reconciliation output: a two-sheet xlsx
// workbook, or a plain CSV ledger when the workbook cannot be written.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/reconcile"
)

const (
	SheetLedger  = "Tum Oylar"
	SheetSummary = "Sonuclar (Ozet)"
)

var ledgerHeader = []interface{}{"photoId", "owner", "score", "juryEmail", "comment", "timestamp"}
var summaryHeader = []interface{}{"photoId", "owner", "total_score", "vote_count", "average_score"}

// Write emits the ledger and the ranking to path as an xlsx workbook. If
// the workbook cannot be written, the ledger alone is saved as CSV next to
// path instead, so collected votes are never lost to a formatting error.
// Returns the path of the artifact actually written.
func Write(path string, ledger []reconcile.ResolvedVote, summary []reconcile.PhotoAggregate) (string, error) {
	if err := writeWorkbook(path, ledger, summary); err != nil {
		logging.Log.Errorf("REPORT: failed to write workbook: %v", err)

		csvPath := csvFallbackPath(path)
		if csvErr := writeLedgerCSV(csvPath, ledger); csvErr != nil {
			return "", fmt.Errorf("report: workbook failed (%v), csv fallback failed: %w", err, csvErr)
		}
		logging.Log.Warnf("REPORT: ledger saved as CSV instead: %s", csvPath)
		return csvPath, nil
	}
	return path, nil
}

func writeWorkbook(path string, ledger []reconcile.ResolvedVote, summary []reconcile.PhotoAggregate) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.Log.Warnf("REPORT: failed to close workbook: %v", err)
		}
	}()

	f.SetSheetName(f.GetSheetName(0), SheetLedger)
	if err := f.SetSheetRow(SheetLedger, "A1", &ledgerHeader); err != nil {
		return err
	}
	for i, v := range ledger {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{v.PhotoID, v.Owner, v.Score, v.JuryEmail, v.Comment, v.Timestamp}
		if err := f.SetSheetRow(SheetLedger, cell, &row); err != nil {
			return err
		}
	}

	if len(summary) > 0 {
		if _, err := f.NewSheet(SheetSummary); err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, "A1", &summaryHeader); err != nil {
			return err
		}
		for i, a := range summary {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			row := []interface{}{a.PhotoID, a.Owner, a.TotalScore, a.VoteCount, a.AverageScore}
			if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func writeLedgerCSV(path string, ledger []reconcile.ResolvedVote) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"photoId", "owner", "score", "juryEmail", "comment", "timestamp"}); err != nil {
		return err
	}
	for _, v := range ledger {
		record := []string{
			v.PhotoID,
			v.Owner,
			strconv.FormatFloat(v.Score, 'f', -1, 64),
			v.JuryEmail,
			v.Comment,
			v.Timestamp,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvFallbackPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".csv"
}
