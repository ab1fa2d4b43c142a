//go:build !tray

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bartek5186/memlab/internal/cli"
)

func main() {
	// kontekst sterujący życiem procesu (CTRL+C / zamknięcie sesji)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
