package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lsers_hub_backend/internal/config"
)

func main() {
	sweepCmd := flag.NewFlagSet("sweep-assets", flag.ExitOnError)
	timeout := sweepCmd.Duration("timeout", 5*time.Minute, "Maximum time the sweep may run")

	if len(os.Args) > 1 && os.Args[1] == "sweep-assets" {
		if err := sweepCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		if err := runSweep(*timeout); err != nil {
			log.Fatalf("FATAL: Asset sweep failed: %v", err)
		}
		return
	}

	startServer()
}

// runSweep removes unreferenced assets from every device namespace once and exits.
func runSweep(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	job, cleanup, err := initializeSweepJob(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize sweep: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	removed, err := job.RunOnce(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Asset sweep completed: %d assets removed\n", removed)
	return nil
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
