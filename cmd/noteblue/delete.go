package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		if st.DeleteNote(args[0]) {
			fmt.Printf("Deleted %s\n", args[0])
		} else {
			fmt.Printf("No note with id %s\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
