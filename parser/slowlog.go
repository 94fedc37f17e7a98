package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Buffer size constants for scanner
const (
	// scannerBuffer is the initial buffer size for reading log lines (4 MB)
	scannerBuffer = 4 * 1024 * 1024

	// scannerMaxBuffer is the maximum buffer size for very long SQL lines (100 MB)
	scannerMaxBuffer = 100 * 1024 * 1024
)

// Header line markers of the MySQL slow-log format.
const (
	timeMarker     = "# Time:"
	userHostMarker = "# User@Host:"
	statsMarker    = "# Query_time:"
)

var (
	// userHostPattern matches "# User@Host: user[user] @ host [addr]".
	// Only the leading user token and the bracketed address are kept.
	userHostPattern = regexp.MustCompile(`User@Host:\s+(\w+)\[.*\]\s+@\s+\[(.*?)\]`)

	// queryStatsPattern matches the four positional fields of the
	// "# Query_time:" header.
	queryStatsPattern = regexp.MustCompile(
		`Query_time:\s+([\d.]+)\s+Lock_time:\s+([\d.]+)\s+Rows_sent:\s+(\d+)\s+Rows_examined:\s+(\d+)`)
)

// SlowLogParser reconstructs Query records from a MySQL slow-query log.
// It owns the running current-database pointer updated by USE
// directives, which persists across records until the next directive.
type SlowLogParser struct {
	currentDB string
	current   *Query
}

// NewSlowLogParser returns a parser whose database pointer starts at
// the UnknownDatabase sentinel.
func NewSlowLogParser() *SlowLogParser {
	return &SlowLogParser{currentDB: UnknownDatabase}
}

// Parse reads a slow-query log and calls emit for every finalized
// record, in file order. A record still accumulating at end of input
// is finalized as if a new "# Time:" header had appeared. Records that
// never acquired SQL text (header-only fragments, file preambles) are
// dropped silently.
func (p *SlowLogParser) Parse(r io.Reader, emit func(*Query)) error {
	scanner := bufio.NewScanner(r)

	// Configure scanner with large buffer to handle long SQL lines
	buf := make([]byte, scannerBuffer)
	scanner.Buffer(buf, scannerMaxBuffer)

	for scanner.Scan() {
		p.parseLine(strings.TrimSpace(scanner.Text()), emit)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Finalize the record still in flight at EOF
	p.flush(emit)
	return nil
}

// parseLine classifies one stripped log line and updates parser state.
// Classification follows the slow-log conventions in priority order:
// blank/comment, "# Time:", "# User@Host:", "# Query_time:", USE
// directive, "set timestamp" directive, other metadata, SQL text.
func (p *SlowLogParser) parseLine(line string, emit func(*Query)) {
	switch {
	case line == "" || strings.HasPrefix(line, "--"):
		// Blank lines and comment blocks carry nothing.

	case strings.HasPrefix(line, timeMarker):
		// A new record starts; hand off the previous one first.
		p.flush(emit)
		p.current = &Query{Timestamp: strings.TrimSpace(line[len(timeMarker):])}

	case strings.HasPrefix(line, userHostMarker):
		if m := userHostPattern.FindStringSubmatch(line); m != nil {
			q := p.ensure()
			q.User = m[1]
			q.Host = m[2]
		}
		// A non-matching header leaves the fields unset; parsing continues.

	case strings.HasPrefix(line, statsMarker):
		if m := queryStatsPattern.FindStringSubmatch(line); m != nil {
			q := p.ensure()
			q.QueryTime, _ = strconv.ParseFloat(m[1], 64)
			q.LockTime, _ = strconv.ParseFloat(m[2], 64)
			q.RowsSent, _ = strconv.Atoi(m[3])
			q.RowsExamined, _ = strconv.Atoi(m[4])
		}

	case len(line) > 4 && strings.EqualFold(line[:4], "use "):
		// Schema switch. Updates the running pointer for subsequent
		// records; does not start or terminate a record.
		db := strings.TrimSpace(line[4:])
		db = strings.Trim(db, ";")
		db = strings.Trim(db, "`")
		p.currentDB = db

	case strings.HasPrefix(line, "#"):
		// Other metadata headers are not interesting.

	case len(line) >= 13 && strings.EqualFold(line[:13], "set timestamp"):
		// Session timestamp directive emitted by the server; skip.

	default:
		// SQL text. The first line snapshots the active database;
		// continuation lines are appended with a separating space.
		q := p.ensure()
		if q.SQL == "" {
			q.SQL = line
			q.Database = p.currentDB
		} else {
			q.SQL += " " + line
		}
	}
}

// ensure returns the record under accumulation, creating an empty one
// for header fragments that appear before any "# Time:" line.
func (p *SlowLogParser) ensure() *Query {
	if p.current == nil {
		p.current = &Query{}
	}
	return p.current
}

// flush finalizes the current record. Records without SQL are dropped.
func (p *SlowLogParser) flush(emit func(*Query)) {
	if p.current == nil {
		return
	}
	if p.current.SQL != "" {
		emit(p.current)
	}
	p.current = nil
}

// ParseFile parses a slow-query log from disk and calls emit for every
// record. Compressed files (.gz, .zst, .zstd) are decompressed on the
// fly; archives (.tar variants, .7z) have each contained log member
// parsed in turn.
func ParseFile(filename string, emit func(*Query)) error {
	if isArchive(filename) {
		return parseArchive(filename, emit)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader, closer, err := decompressReader(file, filename)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	return NewSlowLogParser().Parse(reader, emit)
}
