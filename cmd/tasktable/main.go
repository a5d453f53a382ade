// Package main is the entry point for the tasktable CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktable/internal/backend"
	"tasktable/internal/cli"
	"tasktable/internal/commands"
)

func main() {
	// Cancel in-flight fetches on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.New)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
