package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/store"
)

var (
	editTitle    string
	editContent  string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update fields of an existing note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		var patch store.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("category") {
			patch.Category = &editCategory
		}

		note, ok := st.UpdateNote(args[0], patch)
		if !ok {
			return fmt.Errorf("note not found: %s", args[0])
		}
		fmt.Printf("Updated %s  %s\n", note.ID, note.Title)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "m", "", "New content")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category (empty clears it)")
	rootCmd.AddCommand(editCmd)
}
