// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-site CLI. Each subcommand
// is one action of the profile site's data layer: list and refresh the
// publication cache, show scholar metrics, and produce the updates feed,
// word cloud, and flow diagram data.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/scholar-site/internal/secrets"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets secrets.Secrets

	// siteCfg is the configuration resolved before each command runs.
	siteCfg types.SiteConfig

	// diag receives progress and warning lines: stderr, plus the rotating
	// log file when --log-file is set.
	diag io.Writer = os.Stderr

	logFile *lumberjack.Logger
)

// rootCmd is the base command for the scholar-site CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-site",
	Short: "Data layer for an academic profile site",
	Long: `scholar-site fetches a researcher's publications from DBLP and citation
metrics from their scholar profile, keeps both in a 24-hour cache, labels
publications with research areas, and emits the data the site renders:
publication lists and summaries, the updates feed, word-cloud frequencies,
and flow-diagram data.

Failures never block output: when a fetch fails the last cached data is
shown, and when nothing was ever cached the output is empty.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			logFile = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			}
			diag = io.MultiWriter(os.Stderr, logFile)
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, diag)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(diag, "Loaded secrets: %v\n", keys)
		}

		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		siteCfg = applySecrets(cfg, loadedSecrets)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-site.yaml or ~/.config/scholar-site/scholar-site.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "also write diagnostics to this file (rotated)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (mongo-uri, scholar-proxy)")
	rootCmd.PersistentFlags().String("store", "", "cache store backend: memory, file, sqlite, mongo (overrides store.backend)")

	viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-site")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-site"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("SCHOLAR_SITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
