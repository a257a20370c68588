/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "bluerhyno/internal/adapter/http"
	"bluerhyno/internal/bootstrap/logging"
	"bluerhyno/internal/errs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quoting HTTP API",
	RunE: withApp(func(cmd *cobra.Command, deps appDeps) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			addr = deps.App.Config.HTTP.Addr
		}

		if err := deps.App.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		server := &http.Server{
			Addr:    addr,
			Handler: httpadapter.NewRouter(deps.Svc, deps.Photos),
		}

		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- server.ListenAndServe()
		}()

		logging.Info(ctx, "quoting api started", slog.String("addr", addr))

		select {
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error(ctx, "quoting api failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "serve quoting api")
			}
		case <-runCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logging.Error(ctx, "quoting api shutdown failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "shutdown quoting api")
			}
			logging.Info(ctx, "quoting api stopped")
		}

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (defaults to http.addr from config)")
}
