// Package output renders the aggregated slow-query statistics as
// spreadsheet, Markdown, JSON, and console artifacts.
package output

import (
	"fmt"
	"strings"
)

// reportHeaders is the shared column header row of the spreadsheet and
// Markdown reports: table, count, avg time, max time, handling, db, sql.
var reportHeaders = []string{"表", "次数", "平均时间", "最大时间", "处理方式", "db", "sql"}

// placeholderNote fills the handling column when no heuristic applies.
const placeholderNote = "-------"

// Options control report rendering details.
type Options struct {
	// CacheBypassToken marks queries issued with a cache-bypass hint,
	// typically emitted by backup tooling.
	CacheBypassToken string

	// CacheBypassNote is the handling note attached to such queries.
	CacheBypassNote string
}

// DefaultOptions returns the stock rendering options: mysqldump-style
// SQL_NO_CACHE queries are flagged as backup-induced.
func DefaultOptions() Options {
	return Options{
		CacheBypassToken: "SQL_NO_CACHE",
		CacheBypassNote:  "数据库备份导致的",
	}
}

// HandlingNote returns the heuristic handling note for one SQL text.
func (o Options) HandlingNote(sql string) string {
	if o.CacheBypassToken != "" && strings.Contains(sql, o.CacheBypassToken) {
		return o.CacheBypassNote
	}
	return placeholderNote
}

// truncateRunes shortens s to at most n runes without splitting a
// multi-byte character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// databaseList renders a db list the way it appears in report cells.
func databaseList(dbs []string) string {
	return fmt.Sprintf("[%s]", strings.Join(dbs, " "))
}

// formatBytes converts a byte count to a human-readable string (KB, MB, GB, etc).
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(b)/float64(div), "kMGTPE"[exp])
}
