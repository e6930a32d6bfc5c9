// kodjobs backend
//
// Serves the KodJobs frontend:
//   - job feed proxied from The Muse public API, skill tags derived per
//     posting (optionally cached in Redis, kept warm by a cron job)
//   - signup/login against a flat JSON user document
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/Sanmit243/KodJobs/internal/catalog"
	"github.com/Sanmit243/KodJobs/internal/config"
	"github.com/Sanmit243/KodJobs/internal/httpapi"
	"github.com/Sanmit243/KodJobs/internal/scheduler"
	"github.com/Sanmit243/KodJobs/internal/store"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[kodjobs] No .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[kodjobs] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── User store ───────────────────────────────────────────────────────────
	users, err := store.Open(cfg.UsersFile)
	if err != nil {
		log.Fatalf("[kodjobs] User store: %v", err)
	}
	log.Printf("[kodjobs] User store loaded from %s", cfg.UsersFile)

	// ── Job catalog (+ optional Redis cache) ─────────────────────────────────
	var cat catalog.Catalog = catalog.NewMuseClient(cfg.MuseBaseURL, cfg.MuseAPIKey)

	var warmer *scheduler.Scheduler
	if cfg.RedisURL != "" {
		rdb, err := catalog.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[kodjobs] Redis: %v", err)
		}
		defer rdb.Close()

		cat = catalog.NewCachedCatalog(cat, rdb, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
		log.Printf("[kodjobs] Catalog cache enabled (TTL %dm)", cfg.CacheTTLMinutes)

		warmer = scheduler.New(cat, cfg.RefreshIntervalMinutes)
		if err := warmer.Start(ctx); err != nil {
			log.Fatalf("[kodjobs] Scheduler: %v", err)
		}
	} else {
		log.Println("[kodjobs] REDIS_URL not set — catalog caching disabled")
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := httpapi.NewHandler(users, cat)
	h.RegisterRoutes(mux)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(httpapi.RequestLog(mux))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("[kodjobs] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[kodjobs] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[kodjobs] Shutting down…")
	if warmer != nil {
		warmer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[kodjobs] Shutdown error: %v", err)
	}
	log.Println("[kodjobs] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "kodjobs",
		"version": version,
	})
}
