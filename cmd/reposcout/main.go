package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ralt/reposcout/internal/cli"
	"github.com/ralt/reposcout/internal/models"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Interrupts cancel in-flight probes and index downloads
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode separates usage mistakes from resolution failures
func exitCode(err error) int {
	if models.IsType(err, models.ErrInvalidConfig) || models.IsType(err, models.ErrInvalidPlatform) {
		return 2
	}
	return 1
}
