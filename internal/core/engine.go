package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/port"
)

type allTrades struct{}

// Engine keeps gridpool orders and public trades. Orders are never matched:
// they stay open until canceled or their validity runs out.
type Engine struct {
	repo  port.Repository
	cache port.Cache
	log   *logger.Logger
	now   func() time.Time

	mu sync.Mutex
	// tradeMu keeps trade ids, storage and publication in the same order.
	tradeMu sync.Mutex
	orders  *PubSub[int64, domain.OrderDetail]
	trades  *PubSub[allTrades, domain.PublicTrade]
}

type Option func(*Engine)

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSubscriberBuffer sets the channel capacity of each stream subscriber.
func WithSubscriberBuffer(n int) Option {
	return func(e *Engine) {
		e.orders = NewPubSub[int64, domain.OrderDetail](n)
		e.trades = NewPubSub[allTrades, domain.PublicTrade](n)
	}
}

// NewEngine returns an engine over repo. cache may be nil.
func NewEngine(repo port.Repository, cache port.Cache, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		cache:  cache,
		log:    logger.Nop(),
		now:    time.Now,
		orders: NewPubSub[int64, domain.OrderDetail](64),
		trades: NewPubSub[allTrades, domain.PublicTrade](64),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func validateOrder(o domain.Order) error {
	if err := o.DeliveryArea.Validate(); err != nil {
		return err
	}
	if err := o.DeliveryPeriod.Validate(); err != nil {
		return err
	}
	if o.Type == domain.OrderTypeUnspecified {
		return fmt.Errorf("%w: order type is required", domain.ErrInvalid)
	}
	if o.Side == domain.MarketSideUnspecified {
		return fmt.Errorf("%w: market side is required", domain.ErrInvalid)
	}
	if o.Price.Currency == domain.CurrencyUnspecified {
		return fmt.Errorf("%w: price currency is required", domain.ErrInvalid)
	}
	if !o.Quantity.MWh.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalid)
	}
	return nil
}

func validateIDs(ids ...int64) error {
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: id %d must be positive", domain.ErrInvalid, id)
		}
	}
	return nil
}

// CreateOrder stores o as a new ACTIVE order of the gridpool.
func (e *Engine) CreateOrder(ctx context.Context, gridpoolID int64, o domain.Order) (domain.OrderDetail, error) {
	if err := validateIDs(gridpoolID); err != nil {
		return domain.OrderDetail{}, err
	}
	if err := validateOrder(o); err != nil {
		return domain.OrderDetail{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.repo.NextOrderID(ctx)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	now := e.now().UTC()
	d := &domain.OrderDetail{
		OrderID: id,
		Order:   o,
		StateDetail: domain.StateDetail{
			State:       domain.OrderStateActive,
			StateReason: domain.StateReasonAdd,
			MarketActor: domain.MarketActorUser,
		},
		OpenQuantity:     o.Quantity,
		FilledQuantity:   domain.Energy{MWh: decimal.Zero},
		CreateTime:       now,
		ModificationTime: now,
	}
	if err := e.store(ctx, gridpoolID, d); err != nil {
		return domain.OrderDetail{}, err
	}
	e.log.Info().Int64("gridpool_id", gridpoolID).Int64("order_id", id).Msg("order created")
	return *d, nil
}

// UpdateOrder applies the mask paths of u to an open order.
func (e *Engine) UpdateOrder(ctx context.Context, gridpoolID, orderID int64, u domain.UpdateOrder, paths []string) (domain.OrderDetail, error) {
	if err := validateIDs(gridpoolID, orderID); err != nil {
		return domain.OrderDetail{}, err
	}
	if len(paths) == 0 {
		return domain.OrderDetail{}, fmt.Errorf("%w: update mask is empty", domain.ErrInvalid)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.load(ctx, gridpoolID, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if !d.StateDetail.State.Open() {
		return domain.OrderDetail{}, fmt.Errorf("%w: order %d is %s", ErrNotOpen, orderID, d.StateDetail.State)
	}
	updated, err := u.Apply(d.Order, paths)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if err := validateOrder(updated); err != nil {
		return domain.OrderDetail{}, err
	}
	open := updated.Quantity.MWh.Sub(d.FilledQuantity.MWh)
	if open.IsNegative() {
		return domain.OrderDetail{}, fmt.Errorf("%w: quantity %s below filled %s",
			domain.ErrInvalid, updated.Quantity, d.FilledQuantity)
	}

	d.Order = updated
	d.OpenQuantity = domain.Energy{MWh: open}
	d.StateDetail.StateReason = domain.StateReasonModify
	d.StateDetail.MarketActor = domain.MarketActorUser
	d.ModificationTime = e.now().UTC()
	if err := e.store(ctx, gridpoolID, d); err != nil {
		return domain.OrderDetail{}, err
	}
	e.log.Info().Int64("gridpool_id", gridpoolID).Int64("order_id", orderID).Strs("paths", paths).Msg("order updated")
	return *d, nil
}

func (e *Engine) cancel(d *domain.OrderDetail) {
	d.StateDetail = domain.StateDetail{
		State:       domain.OrderStateCanceled,
		StateReason: domain.StateReasonDelete,
		MarketActor: domain.MarketActorUser,
	}
	d.OpenQuantity = domain.Energy{MWh: decimal.Zero}
	d.ModificationTime = e.now().UTC()
}

func (e *Engine) CancelOrder(ctx context.Context, gridpoolID, orderID int64) (domain.OrderDetail, error) {
	if err := validateIDs(gridpoolID, orderID); err != nil {
		return domain.OrderDetail{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.load(ctx, gridpoolID, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if !d.StateDetail.State.Open() {
		return domain.OrderDetail{}, fmt.Errorf("%w: order %d is %s", ErrNotOpen, orderID, d.StateDetail.State)
	}
	e.cancel(d)
	if err := e.store(ctx, gridpoolID, d); err != nil {
		return domain.OrderDetail{}, err
	}
	e.log.Info().Int64("gridpool_id", gridpoolID).Int64("order_id", orderID).Msg("order canceled")
	return *d, nil
}

// CancelAllOrders cancels every open order of the gridpool in one repository
// write and returns the gridpool id.
func (e *Engine) CancelAllOrders(ctx context.Context, gridpoolID int64) (int64, error) {
	if err := validateIDs(gridpoolID); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	all, err := e.repo.ListOrders(ctx, gridpoolID)
	if err != nil {
		return 0, err
	}
	var changed []*domain.OrderDetail
	canceled := 0
	for _, d := range all {
		if e.expire(d) {
			changed = append(changed, d)
			continue
		}
		if !d.StateDetail.State.Open() {
			continue
		}
		e.cancel(d)
		changed = append(changed, d)
		canceled++
	}
	if len(changed) == 0 {
		return gridpoolID, nil
	}
	if err := e.repo.SaveOrders(ctx, gridpoolID, changed); err != nil {
		return 0, err
	}
	for _, d := range changed {
		e.invalidate(ctx, gridpoolID, d.OrderID)
		e.publishOrder(gridpoolID, *d)
	}
	e.log.Info().Int64("gridpool_id", gridpoolID).Int("canceled", canceled).Msg("all orders canceled")
	return gridpoolID, nil
}

func (e *Engine) GetOrder(ctx context.Context, gridpoolID, orderID int64) (domain.OrderDetail, error) {
	if err := validateIDs(gridpoolID, orderID); err != nil {
		return domain.OrderDetail{}, err
	}
	if e.cache != nil {
		if d, err := e.cache.GetOrder(ctx, gridpoolID, orderID); err == nil && d != nil && !e.expired(d) {
			return *d, nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.load(ctx, gridpoolID, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if e.cache != nil {
		if err := e.cache.SetOrder(ctx, gridpoolID, d); err != nil {
			e.log.Warn().Err(err).Int64("order_id", orderID).Msg("cache set failed")
		}
	}
	return *d, nil
}

// ListOrders returns the filtered orders of a gridpool in ascending id order.
func (e *Engine) ListOrders(ctx context.Context, gridpoolID int64, f domain.GridpoolOrderFilter, p domain.PaginationParams) ([]domain.OrderDetail, domain.PaginationInfo, error) {
	if err := validateIDs(gridpoolID); err != nil {
		return nil, domain.PaginationInfo{}, err
	}

	e.mu.Lock()
	all, err := e.repo.ListOrders(ctx, gridpoolID)
	if err != nil {
		e.mu.Unlock()
		return nil, domain.PaginationInfo{}, err
	}
	var matched []domain.OrderDetail
	for _, d := range all {
		if e.expire(d) {
			if err := e.store(ctx, gridpoolID, d); err != nil {
				e.mu.Unlock()
				return nil, domain.PaginationInfo{}, err
			}
		}
		if f.Matches(*d) {
			matched = append(matched, *d)
		}
	}
	e.mu.Unlock()

	return paginate(matched, p)
}

// Close ends every open subscription; their channels are closed. Calls
// after Close still work but nothing is published anymore.
func (e *Engine) Close() {
	e.orders.Close()
	e.trades.Close()
}

// SubscribeOrders returns a channel receiving every change to the gridpool's
// orders and a function that ends the subscription.
func (e *Engine) SubscribeOrders(gridpoolID int64) (<-chan domain.OrderDetail, func()) {
	ch := e.orders.Subscribe(gridpoolID)
	return ch, func() { e.orders.Unsubscribe(gridpoolID, ch) }
}

// RecordPublicTrade stores t and publishes it. A zero id is assigned from the
// repository sequence.
func (e *Engine) RecordPublicTrade(ctx context.Context, t domain.PublicTrade) (domain.PublicTrade, error) {
	e.tradeMu.Lock()
	defer e.tradeMu.Unlock()

	if t.ID == 0 {
		id, err := e.repo.NextTradeID(ctx)
		if err != nil {
			return domain.PublicTrade{}, err
		}
		t.ID = id
	}
	if t.ExecutionTime.IsZero() {
		t.ExecutionTime = e.now().UTC()
	}
	if err := e.repo.SavePublicTrade(ctx, &t); err != nil {
		return domain.PublicTrade{}, err
	}
	if n := e.trades.Publish(allTrades{}, t); n > 0 {
		e.log.Warn().Int64("trade_id", t.ID).Int("evicted", n).Msg("lagging public trade subscribers evicted")
	}
	return t, nil
}

func (e *Engine) ListPublicTrades(ctx context.Context, f domain.PublicTradeFilter, p domain.PaginationParams) ([]domain.PublicTrade, domain.PaginationInfo, error) {
	all, err := e.repo.ListPublicTrades(ctx)
	if err != nil {
		return nil, domain.PaginationInfo{}, err
	}
	var matched []domain.PublicTrade
	for _, t := range all {
		if f.Matches(*t) {
			matched = append(matched, *t)
		}
	}
	return paginate(matched, p)
}

func (e *Engine) SubscribePublicTrades() (<-chan domain.PublicTrade, func()) {
	ch := e.trades.Subscribe(allTrades{})
	return ch, func() { e.trades.Unsubscribe(allTrades{}, ch) }
}

// load reads an order from the repository, expiring it when its validity
// has passed. Callers hold e.mu.
func (e *Engine) load(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error) {
	d, err := e.repo.LoadOrder(ctx, gridpoolID, orderID)
	if errors.Is(err, port.ErrNotFound) {
		return nil, fmt.Errorf("%w: gridpool %d order %d", ErrOrderNotFound, gridpoolID, orderID)
	}
	if err != nil {
		return nil, err
	}
	if e.expire(d) {
		if err := e.store(ctx, gridpoolID, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (e *Engine) expired(d *domain.OrderDetail) bool {
	return d.StateDetail.State.Open() && d.Order.ValidUntil != nil && !e.now().Before(*d.Order.ValidUntil)
}

// expire moves d to EXPIRED if its validity has passed and reports whether it did.
func (e *Engine) expire(d *domain.OrderDetail) bool {
	if !e.expired(d) {
		return false
	}
	d.StateDetail = domain.StateDetail{
		State:       domain.OrderStateExpired,
		StateReason: domain.StateReasonValidityExpiration,
		MarketActor: domain.MarketActorSystem,
	}
	d.OpenQuantity = domain.Energy{MWh: decimal.Zero}
	d.ModificationTime = e.now().UTC()
	return true
}

func (e *Engine) store(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error {
	if err := e.repo.SaveOrder(ctx, gridpoolID, d); err != nil {
		return err
	}
	e.invalidate(ctx, gridpoolID, d.OrderID)
	e.publishOrder(gridpoolID, *d)
	return nil
}

func (e *Engine) invalidate(ctx context.Context, gridpoolID, orderID int64) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(ctx, gridpoolID, orderID); err != nil {
		e.log.Warn().Err(err).Int64("order_id", orderID).Msg("cache invalidate failed")
	}
}

func (e *Engine) publishOrder(gridpoolID int64, d domain.OrderDetail) {
	if n := e.orders.Publish(gridpoolID, d); n > 0 {
		e.log.Warn().Int64("gridpool_id", gridpoolID).Int("evicted", n).Msg("lagging order subscribers evicted")
	}
}
