package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/pxnote/internal/config"
	"github.com/aretw0/pxnote/internal/server"
	"github.com/aretw0/pxnote/pkg/adapters/docstore"
)

// serveCmd starts the HTTP API backed by the document store.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes HTTP API",
	Long: `Serve starts the REST API over the document store. The database DSN
must be provided via the config file or the environment; it is never
printed or logged.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fatal("Invalid configuration", err)
		}
		if err := cfg.ValidateServe(); err != nil {
			fatal("Invalid configuration", err)
		}

		logger := slog.Default()
		manager, err := docstore.NewManager(cfg.DB, logger)
		if err != nil {
			fatal("Invalid configuration", err)
		}
		defer manager.Close()

		srv := server.New(manager, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Listening on %s\n", cfg.Addr)
		if err := srv.Run(ctx, cfg.Addr); err != nil {
			fatal("Server failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
