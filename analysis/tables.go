// Package analysis extracts table references from slow queries and
// aggregates per-table statistics.
package analysis

import (
	"log"
	"regexp"
	"sort"
	"strings"
)

// tablePatterns are the four independent searches used to pull table
// names out of free-form SQL. Each captures the token following its
// keyword up to the next whitespace, comma, semicolon, or parenthesis.
//
// This is a best-effort heuristic, not a SQL parser. Known limitation,
// kept on purpose: a comma-joined FROM list ("FROM a, b") only yields
// its first table, since the capture stops at the comma. Later tables
// are still found when a JOIN clause names them.
var tablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FROM\s+([^\s,;()]+)`),
	regexp.MustCompile(`(?i)JOIN\s+([^\s,;()]+)`),
	regexp.MustCompile(`(?i)INSERT\s+INTO\s+([^\s,;()]+)`),
	regexp.MustCompile(`(?i)UPDATE\s+([^\s,;()]+)`),
}

// ExtractTables returns the distinct table names referenced by sql, in
// sorted order. An empty result for non-empty SQL is reported as a
// diagnostic, not an error; such queries are simply excluded from
// per-table aggregation.
func ExtractTables(sql string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range tablePatterns {
		for _, m := range pattern.FindAllStringSubmatch(sql, -1) {
			seen[m[1]] = struct{}{}
		}
	}

	if len(seen) == 0 {
		if strings.TrimSpace(sql) != "" {
			log.Printf("[INFO] No tables found in query: %s", sql)
		}
		return nil
	}

	tables := make([]string, 0, len(seen))
	for name := range seen {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

// TableSetLabel renders a table set as its deterministic grouping key:
// the sorted table names joined with commas. Identical unordered sets
// always produce the same label.
func TableSetLabel(tables []string) string {
	sorted := make([]string, len(tables))
	copy(sorted, tables)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
