package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "EUR", CurrencyEUR.String())
	assert.Equal(t, "EUROPE_EIC", EnergyMarketCodeTypeEuropeEIC.String())
	assert.Equal(t, "SELL", MarketSideSell.String())
	assert.Equal(t, "CANCEL_REQUESTED", OrderStateCancelRequested.String())
	assert.Equal(t, "STOP_LIMIT", OrderTypeStopLimit.String())
	assert.Equal(t, "IOC", OrderExecutionOptionIOC.String())
	assert.Equal(t, "APPROVAL_REQUESTED", TradeStateApprovalRequested.String())
	assert.Equal(t, "UNKNOWN(99)", OrderState(99).String())
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCurrency("chf")
	require.NoError(t, err)
	assert.Equal(t, CurrencyCHF, c)

	s, err := ParseOrderState(" hibernate ")
	require.NoError(t, err)
	assert.Equal(t, OrderStateHibernate, s)

	r, err := ParseStateReason("validity_expiration")
	require.NoError(t, err)
	assert.Equal(t, StateReasonValidityExpiration, r)

	a, err := ParseMarketActor("Market_Operator")
	require.NoError(t, err)
	assert.Equal(t, MarketActorMarketOperator, a)

	_, err = ParseMarketSide("HOLD")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFromWire_UnknownIsUnspecified(t *testing.T) {
	assert.Equal(t, OrderStateUnspecified, OrderStateFromWire(42))
	assert.Equal(t, CurrencyUnspecified, CurrencyFromWire(-1))
	assert.Equal(t, OrderTypeLimit, OrderTypeFromWire(1))
}

func TestOrderState_Open(t *testing.T) {
	for _, s := range []OrderState{OrderStatePending, OrderStateActive, OrderStateHibernate} {
		assert.True(t, s.Open(), s.String())
	}
	for _, s := range []OrderState{OrderStateFilled, OrderStateCanceled, OrderStateExpired, OrderStateFailed} {
		assert.False(t, s.Open(), s.String())
	}
}
