package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"myvet/internal/cli"
	"myvet/internal/platform/config"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{Out: os.Stdout, Err: os.Stderr})
	stop()
	os.Exit(code)
}
