package in_memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/port"
)

var _ port.Repository = (*MemoryRepo)(nil)

type orderKey struct {
	gridpool int64
	order    int64
}

type MemoryRepo struct {
	mu          sync.Mutex
	orders      map[orderKey]*domain.OrderDetail
	trades      map[int64]*domain.PublicTrade
	lastOrderID int64
	lastTradeID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		orders: make(map[orderKey]*domain.OrderDetail),
		trades: make(map[int64]*domain.PublicTrade),
	}
}

func (r *MemoryRepo) NextOrderID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOrderID++
	return r.lastOrderID, nil
}

func (r *MemoryRepo) SaveOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error {
	if d == nil {
		return errors.New("nil order detail")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[orderKey{gridpoolID, d.OrderID}] = cloneDetail(d)
	return nil
}

func (r *MemoryRepo) SaveOrders(ctx context.Context, gridpoolID int64, ds []*domain.OrderDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range ds {
		if d == nil {
			return errors.New("nil order detail")
		}
	}
	for _, d := range ds {
		r.orders[orderKey{gridpoolID, d.OrderID}] = cloneDetail(d)
	}
	return nil
}

func (r *MemoryRepo) LoadOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.orders[orderKey{gridpoolID, orderID}]
	if !ok {
		return nil, port.ErrNotFound
	}
	return cloneDetail(d), nil
}

func (r *MemoryRepo) ListOrders(ctx context.Context, gridpoolID int64) ([]*domain.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.OrderDetail
	for k, d := range r.orders {
		if k.gridpool == gridpoolID {
			res = append(res, cloneDetail(d))
		}
	}
	slices.SortFunc(res, func(a, b *domain.OrderDetail) int { return cmp.Compare(a.OrderID, b.OrderID) })
	return res, nil
}

func (r *MemoryRepo) NextTradeID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastTradeID++
	return r.lastTradeID, nil
}

func (r *MemoryRepo) SavePublicTrade(ctx context.Context, t *domain.PublicTrade) error {
	if t == nil {
		return errors.New("nil trade")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trades[t.ID]; ok {
		return nil
	}
	c := *t
	r.trades[t.ID] = &c
	if t.ID > r.lastTradeID {
		r.lastTradeID = t.ID
	}
	return nil
}

func (r *MemoryRepo) ListPublicTrades(ctx context.Context) ([]*domain.PublicTrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.PublicTrade, 0, len(r.trades))
	for _, t := range r.trades {
		c := *t
		res = append(res, &c)
	}
	slices.SortFunc(res, func(a, b *domain.PublicTrade) int { return cmp.Compare(a.ID, b.ID) })
	return res, nil
}

func (r *MemoryRepo) Close(ctx context.Context) {}
