package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchPattern string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault for external changes",
	Long: `Watch prints a line for every change another process makes to the
vault's collections. The pattern filters by collection key, e.g.
'crypto-*'. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vault, err := openVault()
		if err != nil {
			fatal("Error opening vault", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := vault.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		fmt.Println("Watching... (Ctrl-C to stop)")
		for event := range events {
			fmt.Printf("%s  %s  %s\n", time.Unix(event.Timestamp, 0).Format("15:04:05"), event.Type, event.Key)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "*", "Collection key glob")
}
