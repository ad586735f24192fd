package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"c3track/internal/board"
	"c3track/internal/config"
	"c3track/internal/pipeline"
	"c3track/internal/storage"
	"c3track/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("BOARD_API_TOKEN", cfg.BoardAPIToken))

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewService(db, board.NewClient(cfg), cfg)
	w := watcher.NewService(svc, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(w.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
