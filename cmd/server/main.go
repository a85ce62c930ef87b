package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"association-site-api/internal/auth"
	"association-site-api/internal/cache"
	"association-site-api/internal/config"
	"association-site-api/internal/database"
	"association-site-api/internal/datasource"
	"association-site-api/internal/datasync"
	"association-site-api/internal/handlers"
	"association-site-api/internal/metrics"
	"association-site-api/internal/models"
	"association-site-api/internal/realtime"
	"association-site-api/internal/routes"
	"association-site-api/internal/schedule"
	"association-site-api/internal/visibility"

	"gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()
	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// Init database
	db, err := database.Open(cfg.DatabasePath, logger.Info)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cache and live dashboard plumbing
	c := cache.NewSimpleCache(cache.Options{ConcurrencySafe: true})
	tracker := visibility.NewTracker()
	hub := realtime.NewHub()
	m := metrics.New("association_site", c.Len)

	sources := datasource.New(db, c, tracker, datasource.Options{
		StatsPollInterval: cfg.StatsPollInterval,
		Metrics:           m,
		OnStats: func(st datasync.State[models.DashboardStats]) {
			evt := realtime.Event{Type: "stats_updated", Error: st.Error}
			if st.HasData {
				evt.Data = st.Data
			}
			hub.Publish(evt)
		},
	})
	if err := sources.Start(ctx); err != nil {
		log.Fatal("Failed to start data sources: ", err)
	}
	defer sources.Close()

	if cfg.CachePurgeInterval > 0 {
		purge := schedule.Every(ctx, cfg.CachePurgeInterval, func(context.Context) {
			c.PurgeExpired()
		})
		defer purge.Stop()
	}

	// Setup the routes (public and protected routes)
	h := handlers.New(db, sources, hub, tracker)
	ginRoutes := routes.SetupRoutes(h, m)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: ginRoutes,
	}

	log.Printf("Server starting on port %s", srv.Addr)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/media")
	log.Println("  GET    /api/newsletters")
	log.Println("  POST   /api/newsletter/subscribe")
	log.Println("  POST   /api/newsletter/unsubscribe")
	log.Println("  POST   /api/contact")
	log.Println("  *      /api/admin/... (JWT)")
	log.Println("  GET    /api/admin/live (websocket)")
	log.Println("  GET    /metrics")
	log.Println("  GET    /health")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
