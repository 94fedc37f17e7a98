package analysis

import (
	"github.com/dbaops/slowlens/parser"
)

// SQLStat stores aggregated statistics for one distinct SQL text
// within a table set.
type SQLStat struct {
	QueryCount int     `json:"query_count"` // Number of occurrences.
	MaxTime    float64 `json:"max_time"`    // Maximum execution time in seconds.
	TotalTime  float64 `json:"total_time"`  // Total execution time in seconds.
	AvgTime    float64 `json:"avg_time"`    // TotalTime / QueryCount, recomputed on every update.
}

// TableSetStat aggregates all records whose extracted table sets are
// identical as unordered collections. Databases keeps the distinct
// schema names observed for this set, in first-seen order.
type TableSetStat struct {
	Tables    []string            // Sorted member tables of the set.
	Databases []string            // Distinct databases, first-seen order.
	Queries   map[string]*SQLStat // Aggregation by exact SQL text.

	sqlOrder []string // Insertion order of SQL texts, for the spreadsheet.
}

// DatabaseStat accumulates per-schema counters. It is maintained from
// the same record stream as the table-set view but feeds the console
// summary rather than the rendered reports.
type DatabaseStat struct {
	QueryCount  int             // Queries attributed to this database.
	Queries     []*parser.Query // The records themselves, in file order.
	TableCounts map[string]int  // Occurrences per individual table.
}

// Aggregator folds parsed records into the two aggregate views. It
// owns all aggregate state for the lifetime of one analysis run;
// records are immutable once handed in.
type Aggregator struct {
	tableSets map[string]*TableSetStat
	setOrder  []string

	dbStats map[string]*DatabaseStat
	dbOrder []string

	recordCount int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		tableSets: make(map[string]*TableSetStat),
		dbStats:   make(map[string]*DatabaseStat),
	}
}

// Process folds one finalized record into all aggregate state. Table
// extraction runs here so each record is processed exactly once. A
// record with an empty table set still counts toward its database but
// contributes no per-table statistic.
func (a *Aggregator) Process(q *parser.Query) {
	a.recordCount++

	tables := ExtractTables(q.SQL)
	q.Tables = tables

	if len(tables) > 0 {
		a.updateTableSet(q, tables)
	}
	a.updateDatabase(q, tables)
}

// updateTableSet updates the (table-set, sql-text) statistic keyed by
// the set's deterministic label.
func (a *Aggregator) updateTableSet(q *parser.Query, tables []string) {
	label := TableSetLabel(tables)

	set, ok := a.tableSets[label]
	if !ok {
		set = &TableSetStat{
			Tables:  append([]string(nil), tables...),
			Queries: make(map[string]*SQLStat),
		}
		a.tableSets[label] = set
		a.setOrder = append(a.setOrder, label)
	}

	if !containsString(set.Databases, q.Database) {
		set.Databases = append(set.Databases, q.Database)
	}

	stat, ok := set.Queries[q.SQL]
	if !ok {
		stat = &SQLStat{}
		set.Queries[q.SQL] = stat
		set.sqlOrder = append(set.sqlOrder, q.SQL)
	}

	stat.QueryCount++
	if q.QueryTime > stat.MaxTime {
		stat.MaxTime = q.QueryTime
	}
	stat.TotalTime += q.QueryTime
	stat.AvgTime = stat.TotalTime / float64(stat.QueryCount)
}

// updateDatabase updates the owning database's counters.
func (a *Aggregator) updateDatabase(q *parser.Query, tables []string) {
	db, ok := a.dbStats[q.Database]
	if !ok {
		db = &DatabaseStat{TableCounts: make(map[string]int)}
		a.dbStats[q.Database] = db
		a.dbOrder = append(a.dbOrder, q.Database)
	}

	db.QueryCount++
	db.Queries = append(db.Queries, q)
	for _, table := range tables {
		db.TableCounts[table]++
	}
}

// RecordCount returns the number of records processed.
func (a *Aggregator) RecordCount() int {
	return a.recordCount
}

// SQLEntry pairs one distinct SQL text with its statistic.
type SQLEntry struct {
	SQL  string
	Stat SQLStat
}

// TableSetEntry is the immutable per-table-set view handed to renderers.
type TableSetEntry struct {
	Label     string
	Tables    []string
	Databases []string
	Queries   []SQLEntry // Insertion order.
}

// DatabaseEntry is the immutable per-database view for the console summary.
type DatabaseEntry struct {
	Name        string
	QueryCount  int
	TableCounts map[string]int
}

// Report is a derived snapshot of the aggregate state. All renderers
// consume the same snapshot, so none can disturb another's input.
type Report struct {
	TableSets []TableSetEntry // Insertion order of table-set keys.
	Databases []DatabaseEntry // First-seen order of databases.
	Records   int
}

// Report builds the renderer snapshot from the current aggregate state.
func (a *Aggregator) Report() *Report {
	r := &Report{Records: a.recordCount}

	for _, label := range a.setOrder {
		set := a.tableSets[label]
		entry := TableSetEntry{
			Label:     label,
			Tables:    append([]string(nil), set.Tables...),
			Databases: append([]string(nil), set.Databases...),
		}
		for _, sql := range set.sqlOrder {
			entry.Queries = append(entry.Queries, SQLEntry{SQL: sql, Stat: *set.Queries[sql]})
		}
		r.TableSets = append(r.TableSets, entry)
	}

	for _, name := range a.dbOrder {
		db := a.dbStats[name]
		counts := make(map[string]int, len(db.TableCounts))
		for table, n := range db.TableCounts {
			counts[table] = n
		}
		r.Databases = append(r.Databases, DatabaseEntry{
			Name:        name,
			QueryCount:  db.QueryCount,
			TableCounts: counts,
		})
	}

	return r
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
