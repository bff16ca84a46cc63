package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/sniffer/internal/control"
)

var runWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API and, optionally, the Redis job worker",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&runWorker, "worker", false, "process analysis jobs queued in Redis")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	controlCfg := control.ConfigFrom(appCfg)
	controlCfg.WorkerEnabled = runWorker

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := control.NewApp(ctx, controlCfg)
	if err != nil {
		slog.Error("Failed to initialize sniffer", "error", err)
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start sniffer", "error", err)
		return err
	}

	slog.Info("Sniffer started", "config", cfgPath, "port", controlCfg.Server.Port, "worker", runWorker)

	done := make(chan error, 1)
	go func() { done <- app.Wait() }()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	case err := <-done:
		if err != nil {
			slog.Error("Sniffer exited", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		return err
	}
	slog.Info("Sniffer stopped gracefully")
	return nil
}
