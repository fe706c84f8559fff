package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dmitrijs2005/portalcli/internal/buildinfo"
	"github.com/dmitrijs2005/portalcli/internal/client/cli"
	"github.com/dmitrijs2005/portalcli/internal/client/config"
	"github.com/dmitrijs2005/portalcli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})
	logger := logging.NewSlogLogger(slog.New(handler))

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
