package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/edcasillas/globalstats/internal/client/cli"
	"github.com/edcasillas/globalstats/internal/client/config"
	"github.com/edcasillas/globalstats/internal/logging"
	"github.com/edcasillas/globalstats/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := cli.PromptCredentials(cfg, bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		log.Fatalf("read credentials: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.Verbose)

	shutdown, err := telemetry.Setup(ctx, "globalstats-cli", cfg.OTelEndpoint)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
