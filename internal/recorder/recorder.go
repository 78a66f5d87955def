// Package recorder copies public trades from the trading API into a
// TradeSink: first every trade already on the server, then new trades as
// they are streamed.
package recorder

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/port"
)

type Source interface {
	ListPublicTrades(ctx context.Context, filter electricitytrading.PublicTradeFilter, page electricitytrading.PaginationParams) iter.Seq2[electricitytrading.PublicTrade, error]
	StreamPublicTrades(ctx context.Context, filter electricitytrading.PublicTradeFilter) (*electricitytrading.Subscription[electricitytrading.PublicTrade], error)
}

type Recorder struct {
	src      Source
	sink     port.TradeSink
	filter   electricitytrading.PublicTradeFilter
	pageSize int32
	log      *logger.Logger

	// synced is the highest trade id such that every matching trade up to
	// it has been saved.
	synced   int64
	recorded atomic.Int64
}

func New(src Source, sink port.TradeSink, filter electricitytrading.PublicTradeFilter, pageSize int32, log *logger.Logger) *Recorder {
	return &Recorder{src: src, sink: sink, filter: filter, pageSize: pageSize, log: log}
}

// Recorded is the number of trades written so far.
func (r *Recorder) Recorded() int64 { return r.recorded.Load() }

// Run records until ctx is done or the stream fails permanently.
//
// The stream is opened before the backfill so trades recorded during it are
// buffered. Whenever the subscription reports a gap (its buffer overflowed
// or it reconnected) the recorder lists again every trade above the last
// one it knows to be complete.
func (r *Recorder) Run(ctx context.Context) error {
	sub, err := r.src.StreamPublicTrades(ctx, r.filter)
	if err != nil {
		return fmt.Errorf("subscribe to public trades: %w", err)
	}
	defer sub.Close()

	n, err := r.catchUp(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	r.log.Info().Int("trades", n).Int64("last_id", r.synced).Msg("backfill done, following stream")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.Gaps():
			if err := r.refill(ctx); err != nil {
				return err
			}
		case t, ok := <-sub.C():
			if !ok {
				if err := sub.Err(); err != nil && ctx.Err() == nil {
					return fmt.Errorf("public trade stream: %w", err)
				}
				return nil
			}
			// an older trade may have been dropped to make room for t
			select {
			case <-sub.Gaps():
				if err := r.refill(ctx); err != nil {
					return err
				}
				continue
			default:
			}
			if t.ID <= r.synced {
				continue
			}
			if err := r.save(ctx, t); err != nil {
				return err
			}
			r.synced = t.ID
		}
	}
}

func (r *Recorder) refill(ctx context.Context) error {
	n, err := r.catchUp(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	r.log.Warn().Int("trades", n).Int64("last_id", r.synced).Msg("stream gap, trades listed again")
	return nil
}

// catchUp saves every listed trade above r.synced and advances r.synced to
// the highest id listed.
func (r *Recorder) catchUp(ctx context.Context) (int, error) {
	n := 0
	high := r.synced
	for t, err := range r.src.ListPublicTrades(ctx, r.filter, electricitytrading.PaginationParams{PageSize: r.pageSize}) {
		if err != nil {
			return n, fmt.Errorf("list public trades: %w", err)
		}
		if t.ID <= r.synced {
			continue
		}
		if err := r.save(ctx, t); err != nil {
			return n, err
		}
		high = max(high, t.ID)
		n++
	}
	r.synced = high
	return n, nil
}

func (r *Recorder) save(ctx context.Context, t electricitytrading.PublicTrade) error {
	if err := r.sink.SavePublicTrade(ctx, &t); err != nil {
		return fmt.Errorf("save public trade %d: %w", t.ID, err)
	}
	r.recorded.Add(1)
	r.log.Debug().Int64("trade_id", t.ID).Str("price", t.Price.String()).Msg("trade recorded")
	return nil
}
