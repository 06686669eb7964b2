package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pxnote "github.com/aretw0/pxnote"
	"github.com/aretw0/pxnote/internal/config"
	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

var (
	verbose  bool
	cfgPath  string
	dataDir  string
	category string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pxnote",
	Short: "A personal notebook for epics, crypto notes and weekly analyses",
	Long: `PXNote keeps three kinds of notes: epics, crypto notes and weekly
analyses. Notes live in per-category JSON collections on disk, or behind
the HTTP API started by 'pxnote serve'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Vault directory (overrides config)")
}

// openVault resolves the configuration and opens the local vault the
// note subcommands operate on.
func openVault() (*pxnote.Vault, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	dir := cfg.DataDir
	if dataDir != "" {
		dir = dataDir
	}
	return pxnote.Open(dir, pxnote.WithLogger(slog.Default()))
}

// repoForFlag opens the vault and returns the repository selected by the
// --category flag.
func repoForFlag() (*notes.Repository, error) {
	cat := core.Category(category)
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category: %q (want epic, crypto or analysis)", category)
	}
	vault, err := openVault()
	if err != nil {
		return nil, err
	}
	return vault.Notes(cat)
}
