// Package main is ritualctl, the operator CLI for the ritual service.
//
// Usage:
//
//	ritualctl sign 1990-08-15
//	ritualctl fulfil --concurrency 4 order-1 order-2
//	ritualctl render ritual.json -o ritual.pdf
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
