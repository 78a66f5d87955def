package port

import (
	"context"
	"errors"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

var ErrNotFound = errors.New("not found")

// OrderRepository persists gridpool orders. ListOrders returns orders in
// ascending id order.
type OrderRepository interface {
	NextOrderID(ctx context.Context) (int64, error)
	SaveOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error
	SaveOrders(ctx context.Context, gridpoolID int64, ds []*domain.OrderDetail) error
	LoadOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error)
	ListOrders(ctx context.Context, gridpoolID int64) ([]*domain.OrderDetail, error)
}

// TradeRepository stores and lists public trades in ascending id order.
type TradeRepository interface {
	TradeSink
	NextTradeID(ctx context.Context) (int64, error)
	ListPublicTrades(ctx context.Context) ([]*domain.PublicTrade, error)
}

type Repository interface {
	OrderRepository
	TradeRepository
	Close(ctx context.Context)
}
