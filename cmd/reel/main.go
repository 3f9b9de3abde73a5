package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/reel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/reel/config.toml)")
	apiURL := flag.String("api", "", "backend base URL, e.g. http://localhost:8080/api (optional)")
	debug := flag.Bool("debug", false, "log at debug level")
	start := flag.String("open", "", "screen to open first, e.g. /movies (optional)")
	flag.Parse()

	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		APIBaseURL: *apiURL,
		Debug:      *debug,
		StartPath:  *start,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "reel: %v\n", err)
		return 1
	}
	return 0
}
