package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dvelez-dev/travelbook/config"
	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	travelsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, travelsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		travelsTTL: travelsTTL,
	}
}

func (c *RedisCache) GetTravels(ctx context.Context) ([]domain.Travel, error) {
	data, err := c.client.Get(ctx, travelsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var travels []domain.Travel
	if err := json.Unmarshal(data, &travels); err != nil {
		return nil, err
	}
	return travels, nil
}

func (c *RedisCache) SetTravels(ctx context.Context, travels []domain.Travel) error {
	payload, err := json.Marshal(travels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, travelsKey(), payload, c.travelsTTL).Err()
}

// InvalidateTravels drops the cached catalog list after a write.
func (c *RedisCache) InvalidateTravels(ctx context.Context) error {
	return c.client.Del(ctx, travelsKey()).Err()
}

func travelsKey() string {
	return "cache:travels"
}
