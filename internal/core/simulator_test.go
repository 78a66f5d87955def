package core

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

var simAreas = []domain.DeliveryArea{
	{Code: "10YDE-EON------1", CodeType: domain.EnergyMarketCodeTypeEuropeEIC},
	{Code: "10YDE-RWENET---I", CodeType: domain.EnergyMarketCodeTypeEuropeEIC},
}

// TestSimulator_Next verifies generated trades are well formed.
func TestSimulator_Next(t *testing.T) {
	e, _ := newEngine(t)
	s := NewSimulator(e, simAreas, time.Second)
	s.rnd = rand.New(rand.NewPCG(1, 2))

	low := decimal.NewFromInt(72)
	high := decimal.NewFromInt(88)
	for range 200 {
		tr := s.next(testNow)
		require.NoError(t, tr.DeliveryPeriod.Validate())
		assert.True(t, tr.DeliveryPeriod.Start.After(testNow))
		assert.LessOrEqual(t, tr.DeliveryPeriod.Start.Sub(testNow), 25*time.Hour)
		assert.True(t, tr.Price.Amount.GreaterThanOrEqual(low) && tr.Price.Amount.LessThanOrEqual(high), tr.Price.String())
		assert.LessOrEqual(t, -tr.Price.Amount.Exponent(), int32(2))
		assert.True(t, tr.Quantity.MWh.GreaterThanOrEqual(decimal.RequireFromString("0.1")))
		assert.Contains(t, simAreas, tr.BuyDeliveryArea)
		assert.Equal(t, domain.TradeStateActive, tr.State)
	}
}

func TestSimulator_Run(t *testing.T) {
	e, _ := newEngine(t)
	ch, unsubscribe := e.SubscribePublicTrades()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSimulator(e, simAreas, 5*time.Millisecond).Run(ctx)
		close(done)
	}()

	select {
	case tr := <-ch:
		assert.Positive(t, tr.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no simulated trade")
	}
	cancel()
	<-done
}
