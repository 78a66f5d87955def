package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/port"
	"github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

var _ port.Cache = (*RedisCache)(nil)

type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(addr string, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisCacheWithClient(rdb, ttl)
}

func NewRedisCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func key(gridpoolID, orderID int64) string {
	return "od:" + strconv.FormatInt(gridpoolID, 10) + ":" + strconv.FormatInt(orderID, 10)
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) SetOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error {
	b, err := tradingpb.MarshalOrderDetail(*d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(gridpoolID, d.OrderID), b, c.ttl).Err()
}

func (c *RedisCache) GetOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error) {
	b, err := c.client.Get(ctx, key(gridpoolID, orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d, err := tradingpb.UnmarshalOrderDetail(b)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, gridpoolID, orderID int64) error {
	return c.client.Del(ctx, key(gridpoolID, orderID)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
