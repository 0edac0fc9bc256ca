// Package main is the entry point for the Cassini surface viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/cassini/internal/config"
	"github.com/Faultbox/cassini/internal/engine/gpu"
	"github.com/Faultbox/cassini/internal/engine/window"
	"github.com/Faultbox/cassini/internal/logger"
	"github.com/Faultbox/cassini/internal/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Cassini surface viewer ===", zap.String("config", cfg.Source()))
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := viewer.New(cfg)
	if err != nil {
		reportInitError(err)
		return 1
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}

// reportInitError tells the user why the viewer could not start. Graphics
// failures also get a message box, since there may be no terminal.
func reportInitError(err error) {
	logger.Error("failed to start viewer", zap.Error(err))

	var initErr *gpu.InitError
	if !errors.As(err, &initErr) {
		fmt.Fprintf(os.Stderr, "Startup error: %v\n", err)
		return
	}
	msg := fmt.Sprintf("could not initialize the graphics context: %v", initErr)
	fmt.Fprintln(os.Stderr, msg)
	window.ShowError("Cassini", msg)
}
