package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the category list",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in creation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		for _, name := range st.Categories() {
			fmt.Println(name)
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		if err := st.AddCategory(args[0]); err != nil {
			return err
		}
		fmt.Printf("Added category %q\n", args[0])
		return nil
	},
}

var categoriesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a category and uncategorize its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		st.DeleteCategory(args[0])
		fmt.Printf("Removed category %q\n", args[0])
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRmCmd)
	rootCmd.AddCommand(categoriesCmd)
}
