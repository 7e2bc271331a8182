package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/markup"
	"github.com/noteblue/noteblue/internal/query"
)

var (
	listTerm     string
	listCategory string
	listSort     string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, optionally filtered and sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		notes := query.Run(st.Notes(), query.State{
			Term:     listTerm,
			Category: listCategory,
			Sort:     query.ParseSort(listSort),
		})

		if listJSON {
			return json.NewEncoder(os.Stdout).Encode(notes)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%s  %s", n.ID, n.Title)
			if n.Category != "" {
				fmt.Printf("  [%s]", n.Category)
			}
			fmt.Printf("  (updated %s)\n", n.UpdatedAt.Local().Format("2006-01-02 15:04"))
			if preview := markup.Preview(n.Content, 2); preview != "" {
				fmt.Printf("    %s\n", preview)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listTerm, "search", "s", "", "Filter by search term (title or content)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVar(&listSort, "sort", "newest", "Sort order: newest, oldest, alphabetical")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
