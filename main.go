// Package main is the entry point for the jiramodel CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/danielolaszy/jiramodel/cmd"
	"github.com/danielolaszy/jiramodel/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.Debug("starting jiramodel", "version", "1.0.0")

	if err := cmd.ExecuteContext(ctx); err != nil {
		logging.Error("command execution failed", "error", err)
		stop()
		os.Exit(1)
	}
}
