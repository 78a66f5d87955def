package port

import (
	"context"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

//go:generate mockgen -source=cache.go -destination=../mock/cache_mock.go -package=mock

// Cache holds recently read order details. GetOrder returns nil, nil on a miss.
type Cache interface {
	SetOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error
	GetOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error)
	Invalidate(ctx context.Context, gridpoolID, orderID int64) error
}
