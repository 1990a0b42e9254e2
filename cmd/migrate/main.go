package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/migrations"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
)

const defaultCommand = "up"

// migrate [--env-file path] [up|down|status|redo|version|up-to N|down-to N]
func main() {
	_, args, envErr := dotenv.LoadArgs(os.Args[0], os.Args[1:])

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	var log logger.Logger = zapLogger.With(logger.NewField("app", "migrate"))

	if envErr != nil {
		log.Error("failed to load .env file", logger.NewField("error", envErr))
		os.Exit(1)
	}

	command := defaultCommand
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	db, err := config.LoadDatabase()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cmdLog := log.With(logger.NewField("command", command))
	if err := migrations.Run(ctx, postgres.DSN(db), command, args...); err != nil {
		cmdLog.Error("migration failed", logger.NewField("error", err))
		stop()
		os.Exit(1) //nolint:gocritic // stop вызван выше
	}

	cmdLog.Info("migration finished")
}
