package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/olyamironova/electricity-trading-client/internal/adapter/in_memory"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/mock"
)

var testNow = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newEngine(t *testing.T, opts ...Option) (*Engine, *clock) {
	t.Helper()
	c := &clock{t: testNow}
	opts = append([]Option{WithClock(c.now)}, opts...)
	return NewEngine(in_memory.NewMemoryRepo(), nil, opts...), c
}

func order(side domain.MarketSide) domain.Order {
	return domain.Order{
		DeliveryArea: domain.DeliveryArea{Code: "10YDE-EON------1", CodeType: domain.EnergyMarketCodeTypeEuropeEIC},
		DeliveryPeriod: domain.DeliveryPeriod{
			Start:    testNow.Add(24 * time.Hour),
			Duration: domain.DeliveryDurationMinutes15,
		},
		Type:     domain.OrderTypeLimit,
		Side:     side,
		Price:    domain.Price{Amount: decimal.RequireFromString("55.1"), Currency: domain.CurrencyEUR},
		Quantity: domain.Energy{MWh: decimal.RequireFromString("2")},
	}
}

// TestCreateOrder verifies a new order is ACTIVE with its whole quantity open.
func TestCreateOrder(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)
	assert.Positive(t, d.OrderID)
	assert.Equal(t, domain.StateDetail{
		State:       domain.OrderStateActive,
		StateReason: domain.StateReasonAdd,
		MarketActor: domain.MarketActorUser,
	}, d.StateDetail)
	assert.True(t, d.OpenQuantity.Equal(d.Order.Quantity))
	assert.True(t, d.FilledQuantity.MWh.IsZero())
	assert.Equal(t, testNow, d.CreateTime)
	require.NoError(t, d.Validate())

	d2, err := e.CreateOrder(ctx, 1, order(domain.MarketSideSell))
	require.NoError(t, err)
	assert.Greater(t, d2.OrderID, d.OrderID)
}

func TestCreateOrder_Invalid(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	_, err := e.CreateOrder(ctx, 0, order(domain.MarketSideBuy))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	o := order(domain.MarketSideBuy)
	o.Side = domain.MarketSideUnspecified
	_, err = e.CreateOrder(ctx, 1, o)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	o = order(domain.MarketSideBuy)
	o.Quantity = domain.Energy{MWh: decimal.Zero}
	_, err = e.CreateOrder(ctx, 1, o)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	o = order(domain.MarketSideBuy)
	o.DeliveryArea.Code = ""
	_, err = e.CreateOrder(ctx, 1, o)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

// TestGetOrder_OtherGridpool verifies orders are scoped to their gridpool.
func TestGetOrder_OtherGridpool(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)

	got, err := e.GetOrder(ctx, 1, d.OrderID)
	require.NoError(t, err)
	assert.Equal(t, d.OrderID, got.OrderID)

	_, err = e.GetOrder(ctx, 2, d.OrderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = e.GetOrder(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrder(t *testing.T) {
	e, c := newEngine(t)
	ctx := context.Background()

	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)

	c.t = testNow.Add(time.Minute)
	price := domain.Price{Amount: decimal.RequireFromString("60"), Currency: domain.CurrencyEUR}
	qty := domain.Energy{MWh: decimal.RequireFromString("3.5")}
	tag := "desk-a"
	u := domain.UpdateOrder{Price: &price, Quantity: &qty, Tag: &tag}

	got, err := e.UpdateOrder(ctx, 1, d.OrderID, u, u.Paths())
	require.NoError(t, err)
	assert.True(t, got.Order.Price.Equal(price))
	assert.True(t, got.OpenQuantity.Equal(qty))
	assert.Equal(t, "desk-a", got.Order.Tag)
	assert.Equal(t, domain.StateReasonModify, got.StateDetail.StateReason)
	assert.Equal(t, domain.OrderStateActive, got.StateDetail.State)
	assert.Equal(t, c.t, got.ModificationTime)
	assert.Equal(t, d.CreateTime, got.CreateTime)
}

func TestUpdateOrder_ClearTag(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	o := order(domain.MarketSideBuy)
	o.Tag = "x"
	d, err := e.CreateOrder(ctx, 1, o)
	require.NoError(t, err)

	u := domain.UpdateOrder{Clear: []domain.UpdateField{domain.UpdateFieldTag}}
	got, err := e.UpdateOrder(ctx, 1, d.OrderID, u, u.Paths())
	require.NoError(t, err)
	assert.Empty(t, got.Order.Tag)
}

func TestUpdateOrder_EmptyMask(t *testing.T) {
	e, _ := newEngine(t)
	d, err := e.CreateOrder(context.Background(), 1, order(domain.MarketSideBuy))
	require.NoError(t, err)

	_, err = e.UpdateOrder(context.Background(), 1, d.OrderID, domain.UpdateOrder{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

// TestCancelOrder verifies cancel closes the order and a second cancel fails.
func TestCancelOrder(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideSell))
	require.NoError(t, err)

	got, err := e.CancelOrder(ctx, 1, d.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStateCanceled, got.StateDetail.State)
	assert.Equal(t, domain.StateReasonDelete, got.StateDetail.StateReason)
	assert.True(t, got.OpenQuantity.MWh.IsZero())

	_, err = e.CancelOrder(ctx, 1, d.OrderID)
	assert.ErrorIs(t, err, ErrNotOpen)

	price := domain.Price{Amount: decimal.NewFromInt(1), Currency: domain.CurrencyEUR}
	u := domain.UpdateOrder{Price: &price}
	_, err = e.UpdateOrder(ctx, 1, d.OrderID, u, u.Paths())
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestCancelAllOrders(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	a, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)
	b, err := e.CreateOrder(ctx, 1, order(domain.MarketSideSell))
	require.NoError(t, err)
	other, err := e.CreateOrder(ctx, 2, order(domain.MarketSideSell))
	require.NoError(t, err)
	_, err = e.CancelOrder(ctx, 1, a.OrderID)
	require.NoError(t, err)

	gid, err := e.CancelAllOrders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gid)

	got, err := e.GetOrder(ctx, 1, b.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStateCanceled, got.StateDetail.State)

	got, err = e.GetOrder(ctx, 2, other.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStateActive, got.StateDetail.State)

	gid, err = e.CancelAllOrders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gid)
}

// TestExpiry verifies orders past their valid-until are reported EXPIRED.
func TestExpiry(t *testing.T) {
	e, c := newEngine(t)
	ctx := context.Background()

	o := order(domain.MarketSideBuy)
	until := testNow.Add(time.Hour)
	o.ValidUntil = &until
	d, err := e.CreateOrder(ctx, 1, o)
	require.NoError(t, err)

	c.t = until
	got, err := e.GetOrder(ctx, 1, d.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDetail{
		State:       domain.OrderStateExpired,
		StateReason: domain.StateReasonValidityExpiration,
		MarketActor: domain.MarketActorSystem,
	}, got.StateDetail)
	assert.True(t, got.OpenQuantity.MWh.IsZero())

	_, err = e.CancelOrder(ctx, 1, d.OrderID)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestListOrders_FilterAndPages(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	var buys []int64
	for i := range 5 {
		side := domain.MarketSideSell
		if i%2 == 0 {
			side = domain.MarketSideBuy
		}
		d, err := e.CreateOrder(ctx, 1, order(side))
		require.NoError(t, err)
		if side == domain.MarketSideBuy {
			buys = append(buys, d.OrderID)
		}
	}

	side := domain.MarketSideBuy
	f := domain.GridpoolOrderFilter{Side: &side}

	page, info, err := e.ListOrders(ctx, 1, f, domain.PaginationParams{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int32(3), info.TotalItems)
	assert.Equal(t, buys[0], page[0].OrderID)
	assert.Equal(t, buys[1], page[1].OrderID)
	require.True(t, info.HasNext())

	page, info, err = e.ListOrders(ctx, 1, f, domain.PaginationParams{PageSize: 2, PageToken: info.NextPageToken})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, buys[2], page[0].OrderID)
	assert.False(t, info.HasNext())

	_, _, err = e.ListOrders(ctx, 1, f, domain.PaginationParams{PageToken: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidPageToken)

	_, _, err = e.ListOrders(ctx, 1, f, domain.PaginationParams{PageSize: domain.MaxPageSize + 1})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

// TestSubscribeOrders verifies every order change of the gridpool is published.
func TestSubscribeOrders(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	ch, unsubscribe := e.SubscribeOrders(1)
	defer unsubscribe()
	other, unsubscribeOther := e.SubscribeOrders(2)
	defer unsubscribeOther()

	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)
	_, err = e.CancelOrder(ctx, 1, d.OrderID)
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, domain.OrderStateActive, first.StateDetail.State)
	second := <-ch
	assert.Equal(t, domain.OrderStateCanceled, second.StateDetail.State)
	assert.Empty(t, other)
}

func TestPublicTrades(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	ch, unsubscribe := e.SubscribePublicTrades()
	defer unsubscribe()

	tr, err := e.RecordPublicTrade(ctx, domain.PublicTrade{State: domain.TradeStateActive})
	require.NoError(t, err)
	assert.Positive(t, tr.ID)
	assert.Equal(t, testNow, tr.ExecutionTime)

	_, err = e.RecordPublicTrade(ctx, domain.PublicTrade{State: domain.TradeStateCanceled})
	require.NoError(t, err)

	assert.Equal(t, tr.ID, (<-ch).ID)

	page, info, err := e.ListPublicTrades(ctx, domain.PublicTradeFilter{States: []domain.TradeState{domain.TradeStateActive}}, domain.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, tr.ID, page[0].ID)
	assert.Equal(t, int32(DefaultPageSize), info.PageSize)
}

// TestGetOrder_CacheHit verifies a cached detail is served without the repository.
func TestGetOrder_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	ctx := context.Background()

	e := NewEngine(in_memory.NewMemoryRepo(), cache, WithClock(func() time.Time { return testNow }))
	cached := &domain.OrderDetail{OrderID: 42, StateDetail: domain.StateDetail{State: domain.OrderStateActive}}
	cache.EXPECT().GetOrder(ctx, int64(1), int64(42)).Return(cached, nil)

	got, err := e.GetOrder(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.OrderID)
}

// TestGetOrder_CacheFailureFallsBack verifies cache errors only cost a repository read.
func TestGetOrder_CacheFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	ctx := context.Background()

	e := NewEngine(in_memory.NewMemoryRepo(), cache, WithClock(func() time.Time { return testNow }))

	cache.EXPECT().Invalidate(ctx, int64(1), gomock.Any()).Return(nil)
	d, err := e.CreateOrder(ctx, 1, order(domain.MarketSideBuy))
	require.NoError(t, err)

	gomock.InOrder(
		cache.EXPECT().GetOrder(ctx, int64(1), d.OrderID).Return(nil, errors.New("redis down")),
		cache.EXPECT().SetOrder(ctx, int64(1), gomock.Any()).Return(errors.New("redis down")),
	)

	got, err := e.GetOrder(ctx, 1, d.OrderID)
	require.NoError(t, err)
	assert.Equal(t, d.OrderID, got.OrderID)
}

// TestEngine_Close verifies Close ends open subscriptions and refuses new ones.
func TestEngine_Close(t *testing.T) {
	e, _ := newEngine(t)

	orders, unsubscribeOrders := e.SubscribeOrders(1)
	defer unsubscribeOrders()
	trades, unsubscribeTrades := e.SubscribePublicTrades()
	defer unsubscribeTrades()

	e.Close()
	_, open := <-orders
	assert.False(t, open)
	_, open = <-trades
	assert.False(t, open)

	late, unsubscribeLate := e.SubscribePublicTrades()
	defer unsubscribeLate()
	_, open = <-late
	assert.False(t, open)

	_, err := e.RecordPublicTrade(context.Background(), domain.PublicTrade{State: domain.TradeStateActive})
	require.NoError(t, err)
}

// TestLaggingSubscriberEvicted verifies a subscriber that stops reading is
// cut off instead of silently missing trades.
func TestLaggingSubscriberEvicted(t *testing.T) {
	e := NewEngine(in_memory.NewMemoryRepo(), nil, WithSubscriberBuffer(2))
	ch, unsubscribe := e.SubscribePublicTrades()
	defer unsubscribe()

	for i := 0; i < 3; i++ {
		_, err := e.RecordPublicTrade(context.Background(), domain.PublicTrade{State: domain.TradeStateActive})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), (<-ch).ID)
	assert.Equal(t, int64(2), (<-ch).ID)
	_, open := <-ch
	assert.False(t, open)
}
