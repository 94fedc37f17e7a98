package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/term"

	"github.com/dbaops/slowlens/analysis"
)

// defaultTermWidth is used when stdout is not a terminal (pipes, CI).
const defaultTermWidth = 80

// PrintSummary prints the console summary: a processing line, the
// per-database query counts, and the busiest table sets, sized to the
// terminal width.
func PrintSummary(report *analysis.Report, duration time.Duration, fileSize int64) {
	fmt.Printf("slowlens – %d records processed in %.2f s (%s)\n",
		report.Records, duration.Seconds(), formatBytes(fileSize))

	if len(report.Databases) > 0 {
		fmt.Println("\nQueries per database:")
		for _, db := range report.Databases {
			fmt.Printf("  %-30s %d\n", db.Name, db.QueryCount)
		}
	}

	if len(report.TableSets) == 0 {
		return
	}

	width := defaultTermWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}

	type setCount struct {
		label string
		count int
	}
	var sets []setCount
	for _, set := range report.TableSets {
		total := 0
		for _, q := range set.Queries {
			total += q.Stat.QueryCount
		}
		sets = append(sets, setCount{label: set.Label, count: total})
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].count != sets[j].count {
			return sets[i].count > sets[j].count
		}
		return sets[i].label < sets[j].label
	})

	fmt.Println("\nBusiest table sets:")
	for i, s := range sets {
		if i >= 10 {
			break
		}
		line := fmt.Sprintf("  %6d  %s", s.count, s.label)
		if len(line) > width {
			line = truncateRunes(line, width-1) + "…"
		}
		fmt.Println(line)
	}
}
