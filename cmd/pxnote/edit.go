package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pxnote/pkg/core"
)

var (
	editContent string
	editTitle   string
	editSummary string
	editMindset string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing note",
	Long: `Edit replaces the given fields of a note. Only flags you pass are
touched; the note keeps its id and creation time.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := repoForFlag()
		if err != nil {
			fatal("Error opening vault", err)
		}

		fields := core.Fields{}
		if cmd.Flags().Changed("content") {
			fields[core.FieldContent] = editContent
		}
		if cmd.Flags().Changed("title") {
			fields[core.FieldTitle] = editTitle
		}
		if cmd.Flags().Changed("summary") {
			fields[core.FieldSummary] = editSummary
		}
		if cmd.Flags().Changed("mindset") {
			fields[core.FieldMindset] = editMindset
		}
		if len(fields) == 0 {
			fatal("Error editing note", fmt.Errorf("no fields given; pass at least one of --content, --title, --summary, --mindset"))
		}

		note, err := repo.Update(context.Background(), args[0], fields)
		if err != nil {
			exitOnNoteError("Error editing note", err)
		}

		fmt.Printf("Note updated: %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&category, "category", "c", "epic", "Note category (epic, crypto, analysis)")
	editCmd.Flags().StringVar(&editContent, "content", "", "Note content")
	editCmd.Flags().StringVar(&editTitle, "title", "", "Analysis title")
	editCmd.Flags().StringVar(&editSummary, "summary", "", "Analysis summary")
	editCmd.Flags().StringVar(&editMindset, "mindset", "", "Analysis mindset")
}
