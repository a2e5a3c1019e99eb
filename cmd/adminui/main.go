package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adminui/internal/config"
	"adminui/internal/ui"
	"adminui/internal/util/logx"
	"adminui/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("adminui", version.String())
		return
	}

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting adminui %s: %s", version.String(), cfg.String())
	if err := ui.Run(ctx, cfg); err != nil {
		logx.Errorf("adminui exited with error: %v", err)
		os.Exit(1)
	}
}
