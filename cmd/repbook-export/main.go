package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/repbook/internal/export"
	"github.com/meltforce/repbook/internal/store"
	"github.com/meltforce/repbook/internal/training"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	dataDir := flag.String("data", "", "path to the local store directory (default ~/.repbook)")
	routineID := flag.String("routine", "", "routine ID (default: the active routine)")
	week := flag.Int("week", 0, "training week to export (required, 1-12)")
	outPath := flag.String("out", "", "output file (default semana-<week>.csv)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repbook-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *week < 1 || *week > training.WeeksMax {
		fmt.Fprintf(os.Stderr, "Usage: repbook-export -week N [-routine ID] [-data DIR] [-out FILE]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	dir := *dataDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".repbook")
	}

	kv, err := store.OpenSQLite(dir)
	if err != nil {
		log.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	st := store.New(kv)
	defer st.Close()

	ctx := context.Background()

	id := *routineID
	if id == "" {
		activeID, _, err := st.ActiveRoutine(ctx)
		if err != nil {
			log.Error("failed to read active routine", "error", err)
			os.Exit(1)
		}
		if activeID == "" {
			log.Error("no active routine; pass -routine")
			os.Exit(1)
		}
		id = activeID
	}

	r, err := st.LoadRoutine(ctx, id)
	if err != nil {
		log.Error("failed to load routine", "id", id, "error", err)
		os.Exit(1)
	}

	p, err := st.LoadProgress(ctx)
	if err != nil {
		log.Error("failed to load progress", "error", err)
		os.Exit(1)
	}

	path := *outPath
	if path == "" {
		path = export.WeekFilename(*week)
	}

	f, err := os.Create(path)
	if err != nil {
		log.Error("failed to create output file", "path", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := export.WeekCSV(f, r, p, *week); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	log.Info("exported week", "week", *week, "routine", id, "file", path)
}
