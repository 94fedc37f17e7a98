// Package cmd implements the command-line interface for slowlens.
package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dbaops/slowlens/analysis"
	"github.com/dbaops/slowlens/output"
	"github.com/dbaops/slowlens/parser"

	"github.com/spf13/cobra"
)

// runAnalyze is the main execution function for the root command.
// It orchestrates the entire pipeline:
//  1. Resolve configuration (defaults, config file, flags)
//  2. Check that the log file exists
//  3. Parse records and fold them into the aggregator, single pass
//  4. Write the three report artifacts
//  5. Print the console summary
func runAnalyze(cmd *cobra.Command, args []string) {
	startTime := time.Now()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	// A missing input file is a user mistake, not a crash: report it
	// and return before any artifact is produced.
	info, err := os.Stat(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error: cannot find log file %q\n", cfg.LogFile)
		return
	}

	agg := analysis.NewAggregator()
	if err := parser.ParseFile(cfg.LogFile, agg.Process); err != nil {
		log.Fatalf("[ERROR] Failed to parse log file %s: %v", cfg.LogFile, err)
	}

	report := agg.Report()
	opts := renderOptions(cfg)

	// All three artifacts are produced even for an empty aggregate.
	xlsxPath := cfg.OutputPrefix + "_report.xlsx"
	if err := output.WriteXLSX(report, opts, xlsxPath); err != nil {
		log.Fatalf("[ERROR] Failed to write spreadsheet report: %v", err)
	}

	markdownPath := cfg.OutputPrefix + "_markdown.md"
	if err := output.WriteMarkdown(report, opts, markdownPath); err != nil {
		log.Fatalf("[ERROR] Failed to write markdown report: %v", err)
	}

	jsonPath := cfg.OutputPrefix + "_report_table.json"
	if err := output.WriteJSON(report, jsonPath); err != nil {
		log.Fatalf("[ERROR] Failed to write json report: %v", err)
	}

	if !cfg.Quiet {
		output.PrintSummary(report, time.Since(startTime), info.Size())
		fmt.Printf("\nReports written: %s, %s, %s\n", xlsxPath, markdownPath, jsonPath)
	}
}

// renderOptions maps config overrides onto the renderer options.
func renderOptions(cfg Config) output.Options {
	opts := output.DefaultOptions()
	if cfg.CacheBypassToken != "" {
		opts.CacheBypassToken = cfg.CacheBypassToken
	}
	if cfg.CacheBypassNote != "" {
		opts.CacheBypassNote = cfg.CacheBypassNote
	}
	return opts
}
