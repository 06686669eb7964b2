package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pxnote "github.com/aretw0/pxnote"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pxnote",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pxnote version %s\n", pxnote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
