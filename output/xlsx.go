package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dbaops/slowlens/analysis"
)

// WriteXLSX writes the spreadsheet report: a header row followed by one
// data row per (table-set, sql-text) pair, in insertion order. Rows are
// deliberately not sorted; the spreadsheet mirrors aggregation order
// while the Markdown report carries the sorted view.
func WriteXLSX(report *analysis.Report, opts Options, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	row := 1
	for _, set := range report.TableSets {
		for _, q := range set.Queries {
			row++
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{
				set.Label,
				q.Stat.QueryCount,
				q.Stat.AvgTime,
				q.Stat.MaxTime,
				opts.HandlingNote(q.SQL),
				strings.Join(set.Databases, " "),
				q.SQL,
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet %s: %w", path, err)
	}
	return nil
}
