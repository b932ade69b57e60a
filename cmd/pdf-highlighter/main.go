// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-highlighter CLI, a batch tool
// that recursively scans a folder of PDF files, highlights all occurrences
// of user-specified keywords or phrases, and saves annotated copies.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/pdiddy/pdf-highlighter/internal/secrets"
	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pdf-highlighter CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-highlighter",
	Short: "Batch keyword highlighting for folders of PDF documents",
	Long: `pdf-highlighter walks a source folder for PDF files, searches every page
for a list of keywords and phrases (case-insensitive and tolerant of words
hyphenated across line breaks), stamps a yellow highlight annotation over
each match, and writes annotated copies either in place or mirrored under a
destination folder.

One corrupt or locked PDF never halts a batch: failures are reported per
file and processing continues with the next document.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if key, ok := s["unidoc-license-key"]; ok {
			if err := license.SetMeteredKey(key); err != nil {
				fmt.Fprintf(os.Stderr, "warning: activating PDF library license: %v\n", err)
			}
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-highlighter.yaml or ~/.config/pdf-highlighter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-highlighter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-highlighter"))
		}
	}

	viper.SetEnvPrefix("PDF_HIGHLIGHTER")
	viper.AutomaticEnv()

	viper.SetDefault("discover.extension", ".pdf")
	viper.SetDefault("batch.poll_interval", "100ms")
	viper.SetDefault("index.dir", ".")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// appConfig assembles the typed configuration from the active viper state.
func appConfig() types.AppConfig {
	return types.AppConfig{
		Discover: types.DiscoverConfig{
			Extension: viper.GetString("discover.extension"),
		},
		Batch: types.BatchConfig{
			SourceDir:    viper.GetString("batch.source_dir"),
			DestDir:      viper.GetString("batch.dest_dir"),
			PollInterval: viper.GetDuration("batch.poll_interval"),
		},
		Index: types.IndexConfig{
			Enabled: viper.GetBool("index.enabled"),
			Dir:     viper.GetString("index.dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
