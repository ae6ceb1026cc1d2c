package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/happyhackingspace/hof/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(version).Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
