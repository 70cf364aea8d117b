package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/finbuddy/finbot/internal/app"
	"github.com/finbuddy/finbot/internal/common"
)

func main() {
	// Local development keys live in .env; missing file is fine
	_ = godotenv.Load()
	common.LoadVersionFromFile()

	configPaths := resolveConfigPaths()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, configPaths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize finbot: %v\n", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "finbot exited with error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfigPaths checks FINBOT_CONFIG first, then the conventional
// locations. No file at all is fine; defaults plus env vars carry a
// full deployment.
func resolveConfigPaths() []string {
	if path := os.Getenv("FINBOT_CONFIG"); path != "" {
		return []string{path}
	}

	var paths []string
	for _, candidate := range []string{"finbot.toml", "config/finbot.toml"} {
		if _, err := os.Stat(candidate); err == nil {
			paths = append(paths, candidate)
		}
	}
	return paths
}
