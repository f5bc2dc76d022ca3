// Package main runs the interactive console of the catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/console"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/pkg/bootstrap"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

const serviceName = "catalog"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("console failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration and drives the menu on stdin and stdout. Logs go to stderr.
func run(ctx context.Context) error {
	cfg, err := configloader.Load[*config.ConsoleConfig](serviceName)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Console.Log, os.Stderr)
	logger.Debug("Configuration loaded", "config", cfg.String())

	files := service.NewFileService(store.NewFileRepository(cfg.Storage.Path), logger)
	svc := service.NewService(store.NewInMemoryStore(), files, logger)

	return console.NewMenu(svc, os.Stdin, os.Stdout, logger).Run(ctx)
}
