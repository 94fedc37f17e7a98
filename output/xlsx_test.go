package output

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dbaops/slowlens/analysis"
	"github.com/dbaops/slowlens/parser"
)

func TestWriteXLSX(t *testing.T) {
	agg := analysis.NewAggregator()
	agg.Process(&parser.Query{Database: "mydb", SQL: "SELECT * FROM orders WHERE id=1;", QueryTime: 1.5})
	agg.Process(&parser.Query{Database: "mydb", SQL: "SELECT SQL_NO_CACHE * FROM customers;", QueryTime: 0.2})

	path := filepath.Join(t.TempDir(), "out_report.xlsx")
	if err := WriteXLSX(agg.Report(), DefaultOptions(), path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen spreadsheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 data rows, got %d rows", len(rows))
	}

	if !reflect.DeepEqual(rows[0], []string{"表", "次数", "平均时间", "最大时间", "处理方式", "db", "sql"}) {
		t.Errorf("header row = %v", rows[0])
	}

	// Data rows follow insertion order, not sorted order.
	if rows[1][0] != "orders" || rows[2][0] != "customers" {
		t.Errorf("rows out of insertion order: %v / %v", rows[1], rows[2])
	}
	if rows[1][4] != "-------" {
		t.Errorf("handling note = %q, want placeholder", rows[1][4])
	}
	if rows[2][4] != "数据库备份导致的" {
		t.Errorf("handling note = %q, want cache-bypass diagnostic", rows[2][4])
	}
	if rows[1][6] != "SELECT * FROM orders WHERE id=1;" {
		t.Errorf("sql cell = %q", rows[1][6])
	}
}

func TestWriteXLSXEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_report.xlsx")
	if err := WriteXLSX(analysis.NewAggregator().Report(), DefaultOptions(), path); err != nil {
		t.Fatalf("WriteXLSX failed on empty aggregate: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen spreadsheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header-only spreadsheet, got %d rows", len(rows))
	}
}
