package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all persisted notes and categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete all data without --yes")
		}

		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		if err := st.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All notes and categories deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion")
	rootCmd.AddCommand(resetCmd)
}
