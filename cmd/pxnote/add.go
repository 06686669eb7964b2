package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pxnote/pkg/core"
)

var (
	addTitle   string
	addSummary string
	addMindset string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Create a note",
	Long: `Add creates a note in the selected category. Epic and crypto notes
take their content as the positional argument; analysis notes use
--summary (required), --mindset and --title instead.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := repoForFlag()
		if err != nil {
			fatal("Error opening vault", err)
		}

		fields := core.Fields{}
		if len(args) > 0 {
			fields[core.FieldContent] = strings.Join(args, " ")
		}
		if cmd.Flags().Changed("title") {
			fields[core.FieldTitle] = addTitle
		}
		if cmd.Flags().Changed("summary") {
			fields[core.FieldSummary] = addSummary
		}
		if cmd.Flags().Changed("mindset") {
			fields[core.FieldMindset] = addMindset
		}

		note, err := repo.Create(context.Background(), fields)
		if err != nil {
			exitOnNoteError("Error creating note", err)
		}

		fmt.Printf("Note created: %s\n", note.ID)
	},
}

// exitOnNoteError prints validation failures per field before exiting;
// anything else goes through fatal.
func exitOnNoteError(msg string, err error) {
	if verr, ok := core.IsValidation(err); ok {
		fmt.Fprintf(os.Stderr, "%s:\n", msg)
		for field, reason := range verr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, reason)
		}
		os.Exit(1)
	}
	fatal(msg, err)
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&category, "category", "c", "epic", "Note category (epic, crypto, analysis)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Analysis title")
	addCmd.Flags().StringVar(&addSummary, "summary", "", "Analysis summary")
	addCmd.Flags().StringVar(&addMindset, "mindset", "", "Analysis mindset")
}
