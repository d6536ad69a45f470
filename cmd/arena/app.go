package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
	"github.com/KirkDiggler/rpg-arena/internal/combat"
	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/metrics"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/battlelog"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-arena/internal/rewards"
)

const metricsShutdownTimeout = 5 * time.Second

// app is the wired game plus whatever needs closing afterwards
type app struct {
	catalog  *catalog.Catalog
	service  game.Service
	registry *prometheus.Registry
	closers  []func()
}

// Close releases everything newApp opened, newest first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp wires the game from configuration
func newApp(ctx context.Context, c *config.Config, roller dice.Roller) (*app, error) {
	cat, err := catalog.New(catalog.DefaultItems(), catalog.DefaultEnemies())
	if err != nil {
		return nil, err
	}

	a := &app{
		catalog:  cat,
		registry: prometheus.NewRegistry(),
	}

	clk := clock.New()
	history, err := a.newBattleLog(ctx, c, clk)
	if err != nil {
		a.Close()
		return nil, err
	}

	bus := events.NewBus()
	bus.SubscribeFunc(combat.EventCombatResolved, 0, func(_ context.Context, e events.Event) error {
		state, _ := e.Context().Get(combat.ContextKeyState)
		slog.Debug("Combat event", "type", e.Type(), "state", state)
		return nil
	})
	bus.SubscribeFunc(rewards.EventLevelUp, 0, func(_ context.Context, e events.Event) error {
		level, _ := e.Context().Get(rewards.ContextKeyLevel)
		slog.Info("Level up", "player_id", e.Source().GetID(), "level", level)
		return nil
	})

	policy, err := rewards.New(&rewards.Config{
		Roller:   roller,
		EventBus: bus,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service, err = game.NewOrchestrator(&game.Config{
		Catalog:     cat,
		SessionRepo: sessions.NewInMemory(),
		BattleLog:   history,
		Rewards:     policy,
		Metrics:     metrics.New(a.registry),
		IDGenerator: idgen.NewUUID("game"),
		Clock:       clk,
		EventBus:    bus,
		MaxRounds:   c.MaxRounds,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if c.MetricsAddr != "" {
		a.serveMetrics(c.MetricsAddr)
	}

	return a, nil
}

func (a *app) newBattleLog(ctx context.Context, c *config.Config, clk clock.Clock) (battlelog.Repository, error) {
	ids := idgen.NewUUID("battle")

	if c.RedisAddr == "" {
		return battlelog.NewInMemory(&battlelog.InMemoryConfig{
			Clock:       clk,
			IDGenerator: ids,
		})
	}

	client, err := redis.Connect(ctx, c.RedisAddr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "battle history unavailable")
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	slog.Info("Battle history stored in redis", "addr", c.RedisAddr)
	return battlelog.NewRedis(&battlelog.RedisConfig{
		Client:      client,
		Clock:       clk,
		IDGenerator: ids,
	})
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()

	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}
