package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a note as shareable plain text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		note, ok := st.GetNote(args[0])
		if !ok {
			return fmt.Errorf("note not found: %s", args[0])
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		svc := export.NewService(export.WriterSink{W: out})
		if _, err := svc.Export(cmd.Context(), note); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
