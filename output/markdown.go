package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dbaops/slowlens/analysis"
)

// markdownHeader is the fixed header of the Markdown report table.
const markdownHeader = `| 表                                                        | 次数 | 平均时间 | 最大时间 | 处理方式                      |db|sql|
|----------------------------------------------------------|----|------|------|---------------------------|-----|-------|
`

// Truncation limits keep the Markdown table readable; the spreadsheet
// and JSON artifacts carry the untruncated text.
const (
	markdownSQLLimit = 200
	markdownDBLimit  = 50
)

// markdownRow is one rendered table row plus its sort key.
type markdownRow struct {
	count int
	label string
	text  string
}

// WriteMarkdown writes the Markdown report: the same semantic columns
// as the spreadsheet, with rows sorted descending by (query_count,
// table-set label) so the busiest combinations come first.
func WriteMarkdown(report *analysis.Report, opts Options, path string) error {
	rows := buildMarkdownRows(report, opts)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label > rows[j].label
	})

	var b strings.Builder
	b.WriteString(markdownHeader)
	for _, row := range rows {
		b.WriteString(row.text)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing markdown report %s: %w", path, err)
	}
	return nil
}

// buildMarkdownRows renders every (table-set, sql-text) pair as a
// pipe-table row. Time fields use 2 decimal places; the SQL text and
// db list are truncated to their column limits.
func buildMarkdownRows(report *analysis.Report, opts Options) []markdownRow {
	var rows []markdownRow
	for _, set := range report.TableSets {
		dbs := truncateRunes(databaseList(set.Databases), markdownDBLimit)
		for _, q := range set.Queries {
			text := fmt.Sprintf("|%s|%d|%.2f|%.2f|%s|%s|%s|\n",
				set.Label,
				q.Stat.QueryCount,
				q.Stat.AvgTime,
				q.Stat.MaxTime,
				opts.HandlingNote(q.SQL),
				dbs,
				truncateRunes(q.SQL, markdownSQLLimit),
			)
			rows = append(rows, markdownRow{
				count: q.Stat.QueryCount,
				label: set.Label,
				text:  text,
			})
		}
	}
	return rows
}
