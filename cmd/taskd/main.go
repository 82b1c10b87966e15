package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-api/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Cancelled on SIGINT or SIGTERM so serve can shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(os.Stdout, os.Stderr)
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(ctx)
}
