package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vntrieu/darts/internal/config"
	"github.com/vntrieu/darts/internal/database"
	"github.com/vntrieu/darts/internal/httpapi"
	"github.com/vntrieu/darts/internal/ratelimit"
	"github.com/vntrieu/darts/internal/session"
	"github.com/vntrieu/darts/internal/snapshot"
	"github.com/vntrieu/darts/internal/store"
	"github.com/vntrieu/darts/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL.
	dbPool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer dbPool.Close()
	log.Println("connected to database")

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			log.Fatalf("database migrate: %v", err)
		}
		log.Println("migrations up to date")
	}

	snaps, err := snapshot.Open(ctx, cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("snapshot open: %v", err)
	}
	defer snaps.Close()

	players := store.NewPlayerStore(dbPool)
	matches := store.NewMatchStore(dbPool)

	hub := websocket.NewHub(nil)
	engine := session.NewEngine(players, matches, snaps, hub)
	engine.SetPublisher(hub)
	engine.SetWalkOnTimeout(cfg.WalkOnTimeout)
	hub.SetMessageHandler(websocket.NewMessageHandler(hub, engine))
	go hub.Run(ctx)

	if restored, err := engine.Restore(ctx); err != nil {
		log.Printf("restore active game: %v", err)
	} else if restored {
		log.Printf("restored active game game_id=%s", engine.View().Game.ID)
	}

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow)
	if mem, ok := limiter.(*ratelimit.InMemory); ok {
		go pruneLoop(ctx, mem, cfg.RateWindow)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Session:     engine,
		Players:     players,
		Hub:         hub,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("darts backend listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	// graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		os.Exit(1)
	}
}

func pruneLoop(ctx context.Context, limiter *ratelimit.InMemory, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune()
		}
	}
}
