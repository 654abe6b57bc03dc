// Command seed rebuilds the earthquake dataset from the USGS event service:
// the last N years of M4+ events globally, fetched one year at a time to
// stay under the service's 20,000-event query cap.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/quakemap/quake-backend-go/internal/config"
	"github.com/quakemap/quake-backend-go/internal/database"
	"github.com/quakemap/quake-backend-go/internal/ingest"
	"github.com/quakemap/quake-backend-go/internal/repository"
)

func main() {
	var (
		years  = flag.Int("years", 5, "how many years back to fetch")
		minMag = flag.Float64("min-mag", 4.0, "minimum magnitude to fetch")
	)
	flag.Parse()

	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	repo := repository.NewEventRepository(database.GetDB())
	if err := repo.ResetSchema(); err != nil {
		log.Fatal("Failed to reset schema:", err)
	}

	client := ingest.NewClient("")
	ctx := context.Background()
	now := time.Now().UTC()
	total := 0

	for i := 0; i < *years; i++ {
		end := now.AddDate(-i, 0, 0)
		start := now.AddDate(-i-1, 0, 0)

		log.Printf("Fetching %s - %s...", start.Format(time.DateOnly), end.Format(time.DateOnly))

		events, err := client.FetchWindow(ctx, start, end, *minMag)
		if err != nil {
			log.Fatal("Failed to fetch window:", err)
		}
		if err := repo.InsertEvents(events); err != nil {
			log.Fatal("Failed to insert events:", err)
		}

		log.Printf("%d events", len(events))
		total += len(events)
	}

	count, err := repo.Count()
	if err != nil {
		log.Fatal("Failed to count events:", err)
	}
	log.Printf("Done. %d fetched, %d unique events in %s", total, count, cfg.DBPath)
}
