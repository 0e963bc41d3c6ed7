package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/canopy-network/votecollector/app/collector"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := collector.Initialize(ctx)

	app.Start(ctx)
}
