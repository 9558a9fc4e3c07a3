package redis

import (
	"context"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tzbot/config"
)

const pingTimeout = 5 * time.Second

// New connects to the primary Redis instance. It returns nil when the cache is
// disabled or unreachable; the report cache then falls back to a no-op.
func New(config *config.Config) *goRedis.Client {
	if !config.Cache.Redis.Enable {
		log.Debug().Msg("Redis cache disabled")

		return nil
	}

	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     fmt.Sprintf("%s:%s", primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error().Err(err).Str("host", primary.Host).Str("port", primary.Port).Msg("Failed to connect to Redis, continuing without cache")

		_ = client.Close()

		return nil
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
