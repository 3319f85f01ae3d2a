package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ilcreatore32/clo/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.New()
	code := app.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
