package core

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

// Simulator records synthetic public trades on the engine at a fixed interval.
type Simulator struct {
	engine    *Engine
	areas     []domain.DeliveryArea
	currency  domain.Currency
	basePrice decimal.Decimal
	interval  time.Duration
	rnd       *rand.Rand
}

func NewSimulator(engine *Engine, areas []domain.DeliveryArea, interval time.Duration) *Simulator {
	return &Simulator{
		engine:    engine,
		areas:     areas,
		currency:  domain.CurrencyEUR,
		basePrice: decimal.NewFromInt(80),
		interval:  interval,
		rnd:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run records a trade on every tick until ctx is done.
func (s *Simulator) Run(ctx context.Context) {
	if len(s.areas) == 0 || s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.engine.RecordPublicTrade(ctx, s.next(s.engine.now())); err != nil {
				s.engine.log.Warn().Err(err).Msg("simulated trade not recorded")
			}
		}
	}
}

// next builds a trade for a delivery period within the next day.
func (s *Simulator) next(now time.Time) domain.PublicTrade {
	durations := []domain.DeliveryDuration{
		domain.DeliveryDurationMinutes15, domain.DeliveryDurationMinutes30, domain.DeliveryDurationMinutes60,
	}
	dur := durations[s.rnd.IntN(len(durations))]
	step := dur.Duration()
	start := now.UTC().Truncate(step).Add(step * time.Duration(1+s.rnd.IntN(int(24*time.Hour/step))))

	// +-10% around the base price, in cents
	spread := s.basePrice.Div(decimal.NewFromInt(10)).Mul(decimal.NewFromInt(100)).IntPart()
	cents := s.rnd.Int64N(2*spread+1) - spread
	price := s.basePrice.Add(decimal.New(cents, -2))

	quantity := decimal.New(int64(1+s.rnd.IntN(500)), -1)

	buy := s.areas[s.rnd.IntN(len(s.areas))]
	sell := s.areas[s.rnd.IntN(len(s.areas))]

	return domain.PublicTrade{
		BuyDeliveryArea:  buy,
		SellDeliveryArea: sell,
		DeliveryPeriod:   domain.DeliveryPeriod{Start: start, Duration: dur},
		ExecutionTime:    now.UTC(),
		Price:            domain.Price{Amount: price, Currency: s.currency},
		Quantity:         domain.Energy{MWh: quantity},
		State:            domain.TradeStateActive,
	}
}
