package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/landslurp/landslurp/cmd/landslurpd/config"
	"github.com/landslurp/landslurp/internal/export"
	"github.com/landslurp/landslurp/internal/geo"
	"github.com/landslurp/landslurp/internal/ingest"
	"github.com/landslurp/landslurp/internal/search"
	"github.com/landslurp/landslurp/internal/sink"
)

func cmdContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()
	return ctx
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newOrchestrator(cfg *config.Config, logger *zap.Logger) (*ingest.Orchestrator, error) {
	store, err := sink.ForName(cfg.Storage.Backend, cfg.Storage.Options)
	if err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}

	postcodes, err := geo.NewTableStore(cfg.Postcodes.ConnectionString, cfg.Postcodes.Table)
	if err != nil {
		return nil, fmt.Errorf("postcode store init: %w", err)
	}

	exporter, err := export.ForName(cfg.Ingest.Format)
	if err != nil {
		return nil, fmt.Errorf("exporter init: %w", err)
	}

	dl := ingest.NewHTTPDownloader(cfg.Ingest.SourceURL)
	o := ingest.NewOrchestrator(dl, store, postcodes, exporter, logger)
	if cfg.Ingest.BatchSize > 0 {
		o.BatchSize = cfg.Ingest.BatchSize
	}
	return o, nil
}

func newProvisioner(cfg *config.Config, logger *zap.Logger) *search.Provisioner {
	client := search.NewClient(cfg.Search.Service, cfg.Search.AdminKey)
	if cfg.Search.APIVersion != "" {
		client.APIVersion = cfg.Search.APIVersion
	}
	parsingMode := "delimitedText"
	if cfg.Ingest.Format == "json" {
		parsingMode = "jsonArray"
	}
	return &search.Provisioner{
		Client:                  client,
		StorageConnectionString: cfg.Storage.ConnectionString,
		Container:               cfg.Storage.Container,
		ParsingMode:             parsingMode,
		Logger:                  logger,
	}
}
