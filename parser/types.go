// Package parser provides types and parsing for MySQL slow-query logs.
package parser

// Query represents a single reconstructed slow-query log record.
// A record spans several physical lines: comment-prefixed metadata
// headers followed by one or more lines of raw SQL text.
//
// Example log entry:
//
//	# Time: 2024-01-01T00:00:00
//	# User@Host: root[root] @  [10.0.0.1]
//	# Query_time: 1.5  Lock_time: 0.1 Rows_sent: 1  Rows_examined: 100
//	use mydb;
//	SELECT * FROM orders WHERE id=1;
type Query struct {
	// Timestamp is the log-native timestamp text from the "# Time:"
	// header. It is kept opaque; nothing downstream needs calendar math.
	Timestamp string

	// User and Host come from the "# User@Host:" header. Both stay
	// empty when the header is missing or malformed.
	User string
	Host string

	// QueryTime and LockTime are durations in seconds.
	QueryTime float64
	LockTime  float64

	// RowsSent and RowsExamined come from the "# Query_time:" header.
	RowsSent     int
	RowsExamined int

	// Database is the active schema when the query ran, taken from the
	// most recent USE directive in the file. UnknownDatabase when no
	// directive preceded this record.
	Database string

	// SQL is the reconstructed statement text, all non-directive lines
	// of the record joined with single spaces.
	SQL string

	// Tables holds the table names extracted from SQL. The parser
	// leaves it nil; the analysis stage fills it in.
	Tables []string
}

// UnknownDatabase is the sentinel schema name used for records that
// appear before any USE directive in the log.
const UnknownDatabase = "unknown"
