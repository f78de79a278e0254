package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/app"
	"github.com/fsdevblog/screws/internal/bmeta"
	"github.com/fsdevblog/screws/internal/config"
	"github.com/fsdevblog/screws/internal/logs"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := bmeta.New(buildVersion, buildDate, buildCommit)
	args := os.Args[1:]
	if slices.Contains(args, "-version") {
		fmt.Println(info.String()) //nolint:forbidigo
		return
	}

	appConf := config.MustLoadConfig(args)

	logger := logs.MustNew(
		logs.WithLevel(appConf.LogLevel),
		logs.WithEncoding(appConf.LogFormat),
		logs.WithField("version", info.Version),
	)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting screws", append(info.Fields(),
		zap.String("address", appConf.ServerAddress),
		zap.String("storage", string(appConf.StorageType())),
	)...)

	a := app.Must(app.New(ctx, appConf, logger))
	if err := a.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1) //nolint:gocritic
	}
	logger.Info("server stopped")
}
