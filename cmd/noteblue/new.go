package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/store"
)

var (
	newContent  string
	newCategory string
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		title := ""
		if len(args) > 0 {
			title = args[0]
		}
		note := st.CreateNote(store.Draft{
			Title:    title,
			Content:  newContent,
			Category: newCategory,
		})
		fmt.Printf("Created %s  %s\n", note.ID, note.Title)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newContent, "content", "m", "", "Note content")
	newCmd.Flags().StringVarP(&newCategory, "category", "c", "", "Category label")
	rootCmd.AddCommand(newCmd)
}
