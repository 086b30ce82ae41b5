package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nhle/dayboard/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Execute(ctx, cli.Open, os.Args[1:])
}
