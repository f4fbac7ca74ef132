package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	app "github.com/breml/conventional-lint/internal/lint/conventional"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := app.Run(ctx, os.Stdout, os.Stderr, os.Args)
	stop()

	if errors.Is(err, app.ErrLintFailed) {
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
