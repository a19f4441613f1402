// catalogd is a demo daemon for the physical object catalog: it
// populates a small catalog, serves catalog events to websocket
// subscribers, periodically logs collision and network reports, and
// optionally exports snapshots to PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vchernov/physcat/internal/catalog"
	"github.com/vchernov/physcat/internal/config"
	"github.com/vchernov/physcat/internal/export"
	"github.com/vchernov/physcat/internal/model"
	"github.com/vchernov/physcat/internal/monitor"
	"github.com/vchernov/physcat/internal/registry"
)

const ConfigPath = "config/catalogd.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	slog.Info("catalogd starting")

	cfgPath := ConfigPath
	if p := os.Getenv("PHYSCAT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded", "grid_size", cfg.GridSize, "collision_distance", cfg.CollisionDistance)

	cat := catalog.New(cfg.GridSize)

	// The core is not internally synchronized; every goroutine that
	// touches the catalog below takes this lock.
	var mu sync.Mutex

	feed := monitor.NewFeed()
	for _, et := range []registry.EventType{registry.ObjectCreated, registry.ObjectRemoved, registry.ObjectMoved} {
		cat.OnEvent(et, feed.Handler())
	}

	var exporter *export.Exporter
	if cfg.Export.Enabled {
		if err := export.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		exporter, err = export.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting exporter: %w", err)
		}
		defer exporter.Close()
		slog.Info("snapshot exporter connected")
	}

	mu.Lock()
	if err := seedDemoCatalog(cat); err != nil {
		mu.Unlock()
		return fmt.Errorf("seeding demo catalog: %w", err)
	}
	stats := cat.Statistics()
	mu.Unlock()
	slog.Info("demo catalog seeded", "objects", stats.TotalObjects, "cells", stats.OccupiedCells)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Monitor.Enabled {
		server := &http.Server{Addr: cfg.Monitor.Addr(), Handler: monitorMux(feed)}
		g.Go(func() error {
			slog.Info("monitor listening", "addr", cfg.Monitor.Addr())
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("monitor server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return patrolLoop(ctx, cat, &mu)
	})

	g.Go(func() error {
		return reportLoop(ctx, cat, &mu, cfg.CollisionDistance)
	})

	if exporter != nil {
		interval := time.Duration(cfg.Export.IntervalSeconds) * time.Second
		g.Go(func() error {
			return exportLoop(ctx, cat, &mu, exporter, interval)
		})
	}

	return g.Wait()
}

func monitorMux(feed *monitor.Feed) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/events", feed)
	return mux
}

// seedDemoCatalog creates a handful of connected objects: four fixed
// sensors around the origin reporting to one gateway, and a patrol
// beacon that patrolLoop moves in a circle.
func seedDemoCatalog(cat *catalog.Manager) error {
	if _, err := cat.CreateObject("gateway-1", "North Gateway", model.TypeGateway, 0, 0, 0,
		model.WithMaterial(model.MaterialMetal), model.WithMass(12.5), model.WithTags("demo", "uplink")); err != nil {
		return err
	}

	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		id := fmt.Sprintf("sensor-%d", i+1)
		if _, err := cat.CreateObject(id, fmt.Sprintf("Perimeter Sensor %d", i+1), model.TypeSensor,
			25*math.Cos(angle), 25*math.Sin(angle), 0,
			model.WithMaterial(model.MaterialPlastic), model.WithTags("demo", "perimeter")); err != nil {
			return err
		}
		if err := cat.Connect(id, "gateway-1"); err != nil {
			return err
		}
	}

	_, err := cat.CreateObject("beacon-1", "Patrol Beacon", model.TypeBeacon, 25, 0, 5,
		model.WithMaterial(model.MaterialComposite), model.WithTags("demo", "mobile"),
		model.WithConnections("gateway-1"))
	return err
}

// patrolLoop moves the patrol beacon around the perimeter so the
// monitor feed and collision reports have something to show.
func patrolLoop(ctx context.Context, cat *catalog.Manager, mu *sync.Mutex) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	angle := 0.0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			angle += math.Pi / 8
			mu.Lock()
			err := cat.MoveObject("beacon-1", 25*math.Cos(angle), 25*math.Sin(angle), 5)
			mu.Unlock()
			if err != nil {
				return fmt.Errorf("moving patrol beacon: %w", err)
			}
		}
	}
}

// reportLoop periodically logs catalog statistics, collisions and
// network metrics — the reporting layer of the demo.
func reportLoop(ctx context.Context, cat *catalog.Manager, mu *sync.Mutex, collisionDistance float64) error {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mu.Lock()
			stats := cat.Statistics()
			collisions := cat.CheckCollisions(collisionDistance)
			metrics := cat.NetworkMetrics()
			mu.Unlock()

			slog.Info("catalog report",
				"objects", stats.TotalObjects,
				"cells", stats.OccupiedCells,
				"collisions", len(collisions),
				"connections", metrics.TotalConnections,
				"density", metrics.Density,
			)
			for _, c := range collisions {
				slog.Warn("objects too close", "a", c.AID, "b", c.BID, "distance", c.Distance)
			}
		}
	}
}

func exportLoop(ctx context.Context, cat *catalog.Manager, mu *sync.Mutex, exporter *export.Exporter, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mu.Lock()
			err := exporter.SaveSnapshot(ctx, cat)
			mu.Unlock()
			if err != nil {
				slog.Error("snapshot export failed", "err", err)
			}
		}
	}
}
