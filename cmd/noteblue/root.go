package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/config"
	"github.com/noteblue/noteblue/internal/obs"
	"github.com/noteblue/noteblue/internal/storage"
	"github.com/noteblue/noteblue/internal/storage/jsonfile"
	"github.com/noteblue/noteblue/internal/storage/sqlite"
	"github.com/noteblue/noteblue/internal/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noteblue",
	Short: "A personal note-taking tool",
	Long: `NoteBlue manages short text documents: create, edit, tag, search,
and export notes from the command line or over a local HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		obs.Init()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type closer func() error

// openStore loads configuration, builds the configured persistence
// adapter, and opens the note store. The returned closer flushes pending
// writes and releases the adapter.
func openStore(ctx context.Context) (*store.Store, closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	var adapter storage.Adapter
	var closeAdapter func() error
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.DataDir, cfg.DBKey)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		adapter = db
		closeAdapter = db.Close
	default:
		fsAdapter, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open json storage: %w", err)
		}
		adapter = fsAdapter
		closeAdapter = func() error { return nil }
	}

	st := store.Open(ctx, adapter)
	if loadErr := st.LoadErr(); loadErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (starting with empty data)\n", loadErr)
	}

	cl := func() error {
		err := st.Flush(ctx)
		st.Close()
		if cerr := closeAdapter(); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
	return st, cl, nil
}
