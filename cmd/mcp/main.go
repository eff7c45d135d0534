package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	calcmcp "go-chi-calculator/internal/mcp"
	"go-chi-calculator/internal/observability"
)

func main() {
	versionFlag := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *versionFlag {
		fmt.Println("calculator-mcp v0.1.0")
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Logger (zap's production config writes to stderr, leaving stdout to the protocol)
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer observability.SyncLogger()

	if err := calculator.InitMetrics(); err != nil {
		observability.Logger.Fatal("init metrics", zap.Error(err))
	}

	store := calculator.NewStore(calculator.StoreConfig{
		MaxSessions: cfg.MaxSessions,
		TTL:         cfg.SessionTTL,
	}, observability.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Run(ctx, cfg.SweepInterval)

	s := calcmcp.NewServer(calcmcp.NewTools(store, observability.Logger))

	observability.Logger.Info("mcp server started", zap.String("transport", "stdio"))
	if err := server.ServeStdio(s); err != nil {
		observability.Logger.Error("mcp server failed", zap.Error(err))
	}
}
