package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/noteblue/noteblue/internal/api"
	"github.com/noteblue/noteblue/internal/config"
	"github.com/noteblue/noteblue/internal/export"
	"github.com/noteblue/noteblue/internal/obs"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		st, cl, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cl()

		gin.SetMode(gin.ReleaseMode)
		exporter := export.NewService(export.WriterSink{W: os.Stdout})
		handler := api.New(st, exporter)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler.Router(),
		}

		log := obs.Pkg("serve")
		errCh := make(chan error, 1)
		go func() {
			log.Info("http api listening", "addr", addr)
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
		case <-stop:
			log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
