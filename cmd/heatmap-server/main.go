package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quirky-blu/heatmap/internal/app/server"
	"github.com/quirky-blu/heatmap/internal/config"
	"github.com/quirky-blu/heatmap/internal/logger"
	"github.com/quirky-blu/heatmap/internal/observability"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load(".env")

	cfg := config.FromEnv()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the partition files")
	flag.StringVar(&cfg.FilePattern, "file-pattern", cfg.FilePattern, "partition filename pattern with one %d verb")
	flag.IntVar(&cfg.NumPartitions, "partitions", cfg.NumPartitions, "number of partitions to load")
	flag.Parse()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "heatmap-server",
	}, os.Stdout)

	observability.ExposeBuildInfo(Version)
	zl.Info().
		Str("addr", cfg.Addr).
		Str("version", Version).
		Str("data_dir", cfg.DataDir).
		Int("partitions", cfg.NumPartitions).
		Msg("starting heatmap-server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, &zl); err != nil {
		zl.Error().Err(err).Msg("server error")
		return 1
	}
	zl.Info().Msg("server stopped")
	return 0
}
