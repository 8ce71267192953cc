package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"suntzu/internal/bootstrap"
	"suntzu/internal/delivery/cli"
	gameuc "suntzu/internal/usecase/game"
)

func main() {
	flags := pflag.NewFlagSet("suntzu", pflag.ExitOnError)
	bootstrap.Flags(flags)
	_ = flags.Parse(os.Args[1:])

	cfgPath, _ := flags.GetString("config")
	cfg, err := bootstrap.Setup(cfgPath, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup configuration:", err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	logger := NewLogger(level)
	defer logger.Sync()

	if err := run(*cfg, logger); err != nil {
		logger.Errorw("game session failed", "error", err)
		os.Exit(1)
	}
}

func NewLogger(level zapcore.Level) *zap.SugaredLogger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapCfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func run(cfg bootstrap.Config, log *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, log)

	gameUC, err := gameuc.NewGameUseCase(cfg, log)
	if err != nil {
		return errors.Wrap(err, "create game")
	}

	handler := cli.NewHandler(cfg, log, gameUC, os.Stdout)

	done := make(chan error, 1)
	go func() {
		done <- handler.Run(ctx, os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "read commands")
		}
	case <-ctx.Done():
	}

	white, black := gameUC.Scores()
	log.Infow("session finished", "actions", len(gameUC.Log()), "white_score", white, "black_score", black)
	return nil
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
