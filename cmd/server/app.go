package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/config"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/metrics"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-fitness/internal/redis"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
)

// app holds the dependencies shared by every command
type app struct {
	cfg     *config.Config
	repo    snapshot.Repository
	coach   coach.Service
	metrics *metrics.Metrics

	closers []func() error
}

// loadConfig reads and validates the environment and installs the default logger.
// Logs go to stderr so the mcp command keeps stdout for the protocol.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New()}
	clk := clock.New()

	repo, err := a.openRepository(ctx, clk)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.repo = repo

	var gw gateway.Client
	if cfg.GatewayEnabled() {
		gw, err = gateway.NewHTTPClient(&gateway.Config{
			URL:     cfg.GatewayURL,
			APIKey:  cfg.GatewayAPIKey,
			Timeout: cfg.GatewayTimeout,
		})
		if err != nil {
			_ = a.Close()
			return nil, errors.Wrap(err, "failed to create gateway client")
		}
	} else {
		slog.InfoContext(ctx, "no AI gateway configured, using local fallbacks")
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.coach, err = coach.NewOrchestrator(&coach.Config{
		Repository:    repo,
		Gateway:       gw,
		Clock:         clk,
		IDGenerator:   idgen.NewUUID(""),
		Location:      loc,
		ResetSchedule: cfg.QuestReset,
		MaxToolRounds: cfg.MaxToolRounds,
		Metrics:       a.metrics,
	})
	if err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "failed to create coach")
	}
	return a, nil
}

func (a *app) openRepository(ctx context.Context, clk clock.Clock) (snapshot.Repository, error) {
	switch a.cfg.Storage {
	case config.StorageMemory:
		slog.WarnContext(ctx, "using in-memory storage, snapshots are lost on exit")
		return snapshot.NewInMemory(clk), nil

	case config.StorageRedis:
		client, err := redisclient.Connect(a.cfg.RedisAddr, &redisclient.Options{
			Password: a.cfg.RedisPassword,
			UseTLS:   a.cfg.RedisTLS,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
		}
		return snapshot.NewRedisRepository(&snapshot.RedisConfig{Client: client, Clock: clk})

	default:
		repo, err := snapshot.OpenSQLite(ctx, &snapshot.SQLiteConfig{Path: a.cfg.SQLitePath, Clock: clk})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	}
}

// Close releases storage connections in reverse order
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
