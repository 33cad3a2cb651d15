package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/repbook/internal/store"
	"github.com/meltforce/repbook/internal/syncer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "RepBook server URL (e.g. https://repbook.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for write endpoints (or REPBOOK_AUTH_API_KEY)")
	dataDir := flag.String("data", "", "path to the local store directory (default ~/.repbook)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repbook-sync", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: repbook-sync -server <URL> [-api-key KEY] [-data DIR]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	key := *apiKey
	if key == "" {
		key = os.Getenv("REPBOOK_AUTH_API_KEY")
	}
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: -api-key is required (or set REPBOOK_AUTH_API_KEY)\n")
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

	state, err := syncer.OpenPushState(dir)
	if err != nil {
		log.Error("failed to open sync state", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := syncer.NewClient(*serverURL, key)
	s := syncer.New(st, client, state, log)

	stats, err := s.Run(context.Background())
	if err != nil {
		log.Error("sync failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	if stats.Errors > 0 {
		log.Warn("sync finished with errors", "errors", stats.Errors)
		os.Exit(1)
	}
	log.Info("sync complete")
}

func printStats(stats *syncer.Stats) {
	fmt.Println()
	fmt.Println("=== Sync Summary ===")
	fmt.Printf("  Routines pushed:  %d\n", stats.RoutinesPushed)
	fmt.Printf("  Routines skipped: %d (unchanged)\n", stats.RoutinesSkipped)
	fmt.Printf("  Progress pushed:  %v\n", stats.ProgressPushed)
	fmt.Printf("  Log pushed:       %v\n", stats.LogPushed)
	fmt.Printf("  Errors:           %d\n", stats.Errors)
	fmt.Println()
}
