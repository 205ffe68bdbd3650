// Command apiserver runs the vidhaan HTTP API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/swarakshak/vidhaan/internal/app"
	"github.com/swarakshak/vidhaan/internal/config"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: logFormat(cfg.Log.Format),
	})
	if err != nil {
		return err
	}
	logging.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer application.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutdown signal received", logging.String("signal", sig.String()))
		return application.Server.Shutdown(ctx)
	}
}

// logFormat maps the config format names onto zap encoder names.
func logFormat(format string) string {
	if format == "text" {
		return "console"
	}
	return format
}
