package main

import (
	"log"

	"github.com/quakemap/quake-backend-go/internal/api"
	"github.com/quakemap/quake-backend-go/internal/config"
	"github.com/quakemap/quake-backend-go/internal/database"
	"github.com/quakemap/quake-backend-go/internal/handler"
	"github.com/quakemap/quake-backend-go/internal/metrics"
	"github.com/quakemap/quake-backend-go/internal/repository"
	"github.com/quakemap/quake-backend-go/internal/service"
	"github.com/quakemap/quake-backend-go/internal/session"
	"github.com/quakemap/quake-backend-go/internal/store"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	m := metrics.New()

	// Load the dataset in the background so the server comes up
	// immediately; queries arriving before the load finishes get the
	// retryable "data loading" response.
	st := store.New()
	repo := repository.NewEventRepository(database.GetDB())
	go func() {
		if err := st.Load(repo); err != nil {
			log.Fatal("Failed to load event store:", err)
		}
		m.StoreEvents.Set(float64(st.Len()))
	}()

	svc := service.NewQuakeService(st, cfg.ResultCap)
	sessions := session.NewManager(svc.Query, cfg.DebounceWindow, cfg.QueryTimeout, cfg.SessionTTL)
	qh := handler.NewQuakeHandler(svc, sessions, m)

	router := api.SetupRouter(cfg, qh, m)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
