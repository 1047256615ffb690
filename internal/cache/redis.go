package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigmarket/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	RedisTypeSingle  = "redis"
	RedisTypeCluster = "redisCluster"
	pingTimeout      = time.Millisecond * 1500
)

var ErrUnknownRedisType = errors.New("wrong redis type")

// NewRedis connects to the instance or cluster named by cfg.Type. A client that
// fails its first ping is closed before the error is returned.
func NewRedis(cfg config.Cache) (redis.UniversalClient, error) {
	var client redis.UniversalClient
	switch cfg.Type {
	case RedisTypeSingle:
		client = newRedis(cfg)
	case RedisTypeCluster:
		client = newRedisCluster(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRedisType, cfg.Type)
	}

	if err := ping(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func newRedis(cfg config.Cache) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Address,
		Password:        cfg.Redis.Password,
		DB:              0,
		PoolSize:        cfg.Redis.PoolSize,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     time.Second * 1,
		ReadTimeout:     time.Second * 1,
		WriteTimeout:    time.Second * 1,
	})
}

func newRedisCluster(cfg config.Cache) *redis.ClusterClient {
	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           cfg.RedisCluster.Addresses,
		Password:        cfg.RedisCluster.Password,
		RouteRandomly:   false, // send read operations only to master nodes
		ReadOnly:        false, // send read operations only to master nodes
		PoolSize:        cfg.RedisCluster.PoolSize,
		ConnMaxLifetime: 15 * time.Minute,
		DialTimeout:     time.Second * 1,
		ReadTimeout:     time.Second * 1,
		WriteTimeout:    time.Second * 1,
	})
}

func ping(client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx).Err()
}
