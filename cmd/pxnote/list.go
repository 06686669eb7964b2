package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pxnote/pkg/core"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes in a category, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := repoForFlag()
		if err != nil {
			fatal("Error opening vault", err)
		}

		items, err := repo.List(context.Background())
		if err != nil {
			fatal("Error listing notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(items); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, note := range items {
			fmt.Printf("%s  %s  %s\n", note.ID, note.CreatedAt, headline(note))
		}
	},
}

// headline picks the one-line summary shown next to the id.
func headline(note core.Note) string {
	text := note.Content
	if note.Summary != "" {
		text = note.Summary
		if note.Title != "" {
			text = note.Title + ": " + text
		}
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&category, "category", "c", "epic", "Note category (epic, crypto, analysis)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
