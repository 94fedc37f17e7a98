package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/dbaops/slowlens/parser"
)

func record(db, sql string, queryTime float64) *parser.Query {
	return &parser.Query{Database: db, SQL: sql, QueryTime: queryTime}
}

func TestSingleRecordAggregation(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT * FROM orders WHERE id=1;", 1.5))

	report := agg.Report()
	if len(report.TableSets) != 1 {
		t.Fatalf("expected 1 table set, got %d", len(report.TableSets))
	}

	set := report.TableSets[0]
	if set.Label != "orders" {
		t.Errorf("Label = %q", set.Label)
	}
	if !reflect.DeepEqual(set.Databases, []string{"mydb"}) {
		t.Errorf("Databases = %v", set.Databases)
	}
	if len(set.Queries) != 1 {
		t.Fatalf("expected 1 sql entry, got %d", len(set.Queries))
	}

	stat := set.Queries[0].Stat
	if stat.QueryCount != 1 || stat.AvgTime != 1.5 || stat.MaxTime != 1.5 || stat.TotalTime != 1.5 {
		t.Errorf("stat = %+v", stat)
	}
}

func TestIdenticalSQLCollapsesAndAverages(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT * FROM orders WHERE id=1;", 1.0))
	agg.Process(record("mydb", "SELECT * FROM orders WHERE id=1;", 3.0))

	report := agg.Report()
	if len(report.TableSets) != 1 || len(report.TableSets[0].Queries) != 1 {
		t.Fatalf("expected a single collapsed entry: %+v", report.TableSets)
	}

	stat := report.TableSets[0].Queries[0].Stat
	if stat.QueryCount != 2 {
		t.Errorf("QueryCount = %d, want 2", stat.QueryCount)
	}
	if stat.AvgTime != 2.0 || stat.MaxTime != 3.0 || stat.TotalTime != 4.0 {
		t.Errorf("stat = %+v", stat)
	}
}

func TestAvgTimeInvariant(t *testing.T) {
	agg := NewAggregator()
	times := []float64{0.3, 1.7, 2.2, 0.1, 5.9}
	for _, qt := range times {
		agg.Process(record("mydb", "SELECT * FROM orders;", qt))
	}

	stat := agg.Report().TableSets[0].Queries[0].Stat
	want := stat.TotalTime / float64(stat.QueryCount)
	if math.Abs(stat.AvgTime-want) > 1e-9 {
		t.Errorf("AvgTime = %v, want TotalTime/QueryCount = %v", stat.AvgTime, want)
	}
}

func TestTableSetsAreCompositeKeys(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT * FROM orders;", 1.0))
	agg.Process(record("mydb", "SELECT * FROM orders JOIN customers ON 1=1;", 2.0))

	report := agg.Report()
	// Overlapping tables, different sets: two separate aggregates.
	if len(report.TableSets) != 2 {
		t.Fatalf("expected 2 table sets, got %d", len(report.TableSets))
	}
	if report.TableSets[0].Label != "orders" || report.TableSets[1].Label != "customers,orders" {
		t.Errorf("labels = %q, %q", report.TableSets[0].Label, report.TableSets[1].Label)
	}
}

func TestDatabaseListFirstSeenOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("beta", "SELECT * FROM orders;", 1.0))
	agg.Process(record("alpha", "SELECT * FROM orders;", 1.0))
	agg.Process(record("beta", "SELECT * FROM orders;", 1.0))

	set := agg.Report().TableSets[0]
	if !reflect.DeepEqual(set.Databases, []string{"beta", "alpha"}) {
		t.Errorf("Databases = %v, want first-seen order without duplicates", set.Databases)
	}
}

func TestEmptyTableSetCountsInDatabaseOnly(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT 1;", 0.5))

	report := agg.Report()
	if len(report.TableSets) != 0 {
		t.Errorf("empty table set must not create a per-table entry: %+v", report.TableSets)
	}
	if len(report.Databases) != 1 {
		t.Fatalf("expected 1 database entry, got %d", len(report.Databases))
	}
	if db := report.Databases[0]; db.Name != "mydb" || db.QueryCount != 1 {
		t.Errorf("database entry = %+v", db)
	}
	if report.Records != 1 {
		t.Errorf("Records = %d, want 1", report.Records)
	}
}

func TestPerDatabaseTableCounts(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT * FROM orders JOIN customers ON 1=1;", 1.0))
	agg.Process(record("mydb", "SELECT * FROM orders;", 1.0))

	db := agg.Report().Databases[0]
	if db.QueryCount != 2 {
		t.Errorf("QueryCount = %d", db.QueryCount)
	}
	want := map[string]int{"orders": 2, "customers": 1}
	if !reflect.DeepEqual(db.TableCounts, want) {
		t.Errorf("TableCounts = %v, want %v", db.TableCounts, want)
	}
}

func TestReportPreservesInsertionOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Process(record("mydb", "SELECT * FROM zzz;", 1.0))
	agg.Process(record("mydb", "SELECT * FROM aaa;", 1.0))
	agg.Process(record("mydb", "UPDATE zzz SET a=1;", 1.0))

	report := agg.Report()
	if len(report.TableSets) != 2 {
		t.Fatalf("expected 2 table sets, got %d", len(report.TableSets))
	}
	if report.TableSets[0].Label != "zzz" || report.TableSets[1].Label != "aaa" {
		t.Errorf("table sets must keep insertion order: %q, %q",
			report.TableSets[0].Label, report.TableSets[1].Label)
	}
	zzz := report.TableSets[0]
	if len(zzz.Queries) != 2 || zzz.Queries[0].SQL != "SELECT * FROM zzz;" {
		t.Errorf("sql entries must keep insertion order: %+v", zzz.Queries)
	}
}

func TestProcessSetsRecordTables(t *testing.T) {
	agg := NewAggregator()
	q := record("mydb", "SELECT * FROM orders;", 1.0)
	agg.Process(q)
	if !reflect.DeepEqual(q.Tables, []string{"orders"}) {
		t.Errorf("Tables = %v, want extracted set recorded on the query", q.Tables)
	}
}
