package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/koywe/config"
	"github.com/dmitrijs2005/koywe/internal/buildinfo"
	"github.com/dmitrijs2005/koywe/internal/cli"
	"github.com/dmitrijs2005/koywe/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	app := cli.NewApp(cfg, os.Stdin, os.Stdout, logger)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
