// Package main is the entry point for the slowlens application.
// slowlens parses MySQL slow-query log files and produces aggregated
// per-table statistics as spreadsheet, Markdown, and JSON reports.
package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/dbaops/slowlens/cmd"
)

func main() {

	// CPU profiling
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	// Memory profiling
	if memProfile := os.Getenv("MEMPROFILE"); memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// All command-line parsing, flag handling, and execution logic
	// is delegated to the cmd package.
	cmd.Execute()
}
