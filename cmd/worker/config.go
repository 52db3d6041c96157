package main

import (
	"github.com/hibiken/asynq"

	"microposts-backend/internal/config"
	"microposts-backend/pkg/logger"
)

// Config holds the worker's view of the application configuration
type Config struct {
	Redis         asynq.RedisClientOpt
	Concurrency   int
	PruneSchedule string
}

func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		Redis: asynq.RedisClientOpt{
			Addr:     appCfg.Redis.Host,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		},
		Concurrency:   appCfg.Worker.Concurrency,
		PruneSchedule: appCfg.Worker.PruneSchedule,
	}

	logger.Info("Worker config loaded", map[string]interface{}{
		"redis":          cfg.Redis.Addr,
		"concurrency":    cfg.Concurrency,
		"prune_schedule": cfg.PruneSchedule,
	})

	return cfg
}
