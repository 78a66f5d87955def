package in_memory

import (
	"context"
	"sync"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/port"
)

type Cache struct {
	mu    sync.Mutex
	store map[orderKey]*domain.OrderDetail
}

var _ port.Cache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{store: make(map[orderKey]*domain.OrderDetail)}
}

func (c *Cache) SetOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[orderKey{gridpoolID, d.OrderID}] = cloneDetail(d)
	return nil
}

func (c *Cache) GetOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.store[orderKey{gridpoolID, orderID}]
	if !ok {
		return nil, nil
	}
	return cloneDetail(d), nil
}

func (c *Cache) Invalidate(ctx context.Context, gridpoolID, orderID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, orderKey{gridpoolID, orderID})
	return nil
}
