package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dbaops/slowlens/analysis"
)

// JSON structures define the format of the structured report.
// TableSetJSON holds the composite value for one table-set key: the
// distinct-db ordered list and the per-SQL-text statistics. The "db"
// list lives in its own field rather than as a reserved key inside the
// queries map, so sentinel and user data never share a namespace.

type TableSetJSON struct {
	Databases []string                    `json:"db"`
	Queries   map[string]analysis.SQLStat `json:"queries"`
}

type ReportJSON struct {
	Tables     []string                `json:"tables"`
	TableStats map[string]TableSetJSON `json:"table_stats"`
}

// WriteJSON writes the structured report: every table-set key mapped to
// its composite aggregate, plus the top-level list of all table-set
// keys. Output is pretty-printed with 2-space indentation; non-ASCII
// text (db names, SQL literals, handling notes) stays unescaped. Field
// ordering is stable: struct fields are fixed and map keys marshal
// sorted.
func WriteJSON(report *analysis.Report, path string) error {
	doc := ReportJSON{
		Tables:     []string{},
		TableStats: make(map[string]TableSetJSON),
	}

	for _, set := range report.TableSets {
		doc.Tables = append(doc.Tables, set.Label)

		queries := make(map[string]analysis.SQLStat, len(set.Queries))
		for _, q := range set.Queries {
			queries[q.SQL] = q.Stat
		}
		doc.TableStats[set.Label] = TableSetJSON{
			Databases: set.Databases,
			Queries:   queries,
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating json report %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing json report %s: %w", path, err)
	}
	return nil
}
