package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallyouneed/wallyouneed/cmd"
	runtimectx "github.com/wallyouneed/wallyouneed/internal/runtime"
)

// Set at build time with -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   string
	buildDate string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(runtimectx.NewContext(version, buildDate))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
