package main

import (
	"context"
	"log"

	"coursegraph/infrastructure/config"
	"coursegraph/infrastructure/di"
	"coursegraph/interfaces/mcp"

	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// stdout carries the protocol; zap writes to stderr
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer func() { _ = container.Logger.Sync() }()

	server := mcp.NewServer(version, container.QueryBus, mcp.Defaults{
		Campus:   cfg.DefaultCampus,
		Depth:    cfg.DefaultDepth,
		MaxDepth: cfg.MaxDepth,
	}, container.Logger)

	container.Logger.Info("Serving MCP over stdio",
		zap.Int("courses", container.CourseCount()),
		zap.Bool("similarity_enabled", container.SimilarityEnabled()),
	)
	if err := server.Serve(); err != nil {
		container.Logger.Error("MCP server stopped", zap.Error(err))
	}
}
