package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/prateek4576/mytodoapp/internal/config"
	"github.com/prateek4576/mytodoapp/internal/db"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/redis"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunBootstrapMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	log.Info("database ready")

	redisClient, err := redis.New(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		return nil, err
	}

	log.Info("redis ready")

	return &Infra{
		DB:    &db.DB{DB: sqlDB},
		Redis: redisClient,
	}, nil
}
