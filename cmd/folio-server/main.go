package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/server"
)

func main() {
	a, err := app.NewApp(os.Getenv("FOLIO_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	if err := server.Run(context.Background(), a); err != nil {
		a.Logger.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
