package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"taskroom/domain"
	"taskroom/runtime"
	"taskroom/runtime/workers"
	"taskroom/transport/ws"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	charReplacement, err := CharacterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}

	// 2. Setup Supervision & Orchestration
	room := domain.NewRoom()
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(
		log, sup, registry, room,
		config.BufferSize, config.SinkTimeout, config.MetricInterval, charReplacement,
	)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start the Engine
	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// 5. Websocket Server Setup
	wsServer := ws.NewServer(log, orchestrator, config.ConnectionBufferSize)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsServer.Handle)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: mux}

	// Use an error channel to capture Serve() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting websocket server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
