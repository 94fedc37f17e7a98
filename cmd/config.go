package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spf13/cobra"
)

// Defaults for the command surface.
const (
	defaultLogFile      = "mysql-slow.log"
	defaultOutputPrefix = "slow_query"
)

// Config holds the run settings. Values come from three layers in
// increasing precedence: built-in defaults, the YAML config file, and
// explicitly set command-line flags.
type Config struct {
	LogFile      string `yaml:"log_file"`
	OutputPrefix string `yaml:"output_prefix"`
	Quiet        bool   `yaml:"quiet"`

	// Handling-note heuristic for the report renderers. Empty values
	// keep the built-in SQL_NO_CACHE rule.
	CacheBypassToken string `yaml:"cache_bypass_token"`
	CacheBypassNote  string `yaml:"cache_bypass_note"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		LogFile:      defaultLogFile,
		OutputPrefix: defaultOutputPrefix,
	}
}

// loadConfigFile merges the YAML file at path into cfg.
func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// resolveConfig builds the effective configuration for this run.
// Flags the user actually set on the command line win over the config
// file; the config file wins over defaults.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := defaultConfig()

	if configFlag != "" {
		if err := loadConfigFile(&cfg, configFlag); err != nil {
			return Config{}, err
		}
		// An incomplete config file falls back to the defaults.
		if cfg.LogFile == "" {
			cfg.LogFile = defaultLogFile
		}
		if cfg.OutputPrefix == "" {
			cfg.OutputPrefix = defaultOutputPrefix
		}
	}

	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFileFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPrefix = outputPrefixFlag
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = quietFlag
	}

	return cfg, nil
}
