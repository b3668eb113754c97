package database

import (
	"context"
	"fmt"
	"time"

	"medipublish_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the catalog-cache client. Redis is an optional
// accelerator here: callers may run with a nil client and every read
// falls through to the database.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
