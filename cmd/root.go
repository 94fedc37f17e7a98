// Package cmd implements the command-line interface for slowlens.
// It uses the Cobra library to handle commands, flags, and execution.
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// Flag variables for command-line options.
// These are package-level variables as required by Cobra's flag binding.
var (
	logFileFlag      string // --log-file: Path to the slow-query log
	outputPrefixFlag string // --output: Prefix for the report artifacts
	configFlag       string // --config: Optional YAML config file
	quietFlag        bool   // --quiet: Suppress the console summary
)

// rootCmd is the main command for the slowlens CLI.
var rootCmd = &cobra.Command{
	Use:   "slowlens",
	Short: "MySQL slow-query log analyzer",
	Long: `slowlens is a CLI tool to parse and analyze MySQL slow-query logs.

It aggregates slow queries per referenced table set and per distinct
SQL text (count, average/max/total duration), and writes three report
artifacts next to the working directory:

  <prefix>_report.xlsx        spreadsheet report
  <prefix>_markdown.md        Markdown table, busiest combinations first
  <prefix>_report_table.json  structured nested aggregate

Plain, gzip/zstd-compressed, and archived (.tar*, .7z) logs are accepted.`,
	Run: runAnalyze,
}

// Execute runs the root command.
// This is called by main.go to start the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// registerFlags binds the command-line flags to their package variables.
func registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&logFileFlag, "log-file", "l", defaultLogFile,
		"Path to the MySQL slow-query log file")
	cmd.Flags().StringVarP(&outputPrefixFlag, "output", "o", defaultOutputPrefix,
		"Prefix for the generated report files")
	cmd.Flags().StringVarP(&configFlag, "config", "c", "",
		"Optional YAML configuration file")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress the console summary")
}

// init initializes all command-line flags.
func init() {
	registerFlags(rootCmd)
}
