package domain

import (
	"fmt"
	"strings"
)

// Currency of a price. Values follow the wire numbering.
type Currency int32

const (
	CurrencyUnspecified Currency = iota
	CurrencyUSD
	CurrencyCAD
	CurrencyEUR
	CurrencyGBP
	CurrencyCHF
	CurrencyCNY
	CurrencyJPY
	CurrencyAUD
	CurrencyNZD
	CurrencySGD
)

var currencyNames = []string{"UNSPECIFIED", "USD", "CAD", "EUR", "GBP", "CHF", "CNY", "JPY", "AUD", "NZD", "SGD"}

func (c Currency) String() string { return enumName(currencyNames, int32(c)) }

func ParseCurrency(s string) (Currency, error) {
	v, err := parseEnum("currency", currencyNames, s)
	return Currency(v), err
}

// EnergyMarketCodeType identifies the coding scheme of a delivery area code.
type EnergyMarketCodeType int32

const (
	EnergyMarketCodeTypeUnspecified EnergyMarketCodeType = iota
	EnergyMarketCodeTypeEuropeEIC
	EnergyMarketCodeTypeUSNERC
)

var codeTypeNames = []string{"UNSPECIFIED", "EUROPE_EIC", "US_NERC"}

func (t EnergyMarketCodeType) String() string { return enumName(codeTypeNames, int32(t)) }

func ParseEnergyMarketCodeType(s string) (EnergyMarketCodeType, error) {
	v, err := parseEnum("energy market code type", codeTypeNames, s)
	return EnergyMarketCodeType(v), err
}

type MarketSide int32

const (
	MarketSideUnspecified MarketSide = iota
	MarketSideBuy
	MarketSideSell
)

var marketSideNames = []string{"UNSPECIFIED", "BUY", "SELL"}

func (s MarketSide) String() string { return enumName(marketSideNames, int32(s)) }

func ParseMarketSide(s string) (MarketSide, error) {
	v, err := parseEnum("market side", marketSideNames, s)
	return MarketSide(v), err
}

// OrderState is the lifecycle state of a gridpool order.
type OrderState int32

const (
	OrderStateUnspecified OrderState = iota
	OrderStatePending
	OrderStateActive
	OrderStateFilled
	OrderStateCanceled
	OrderStateCancelRequested
	OrderStateCancelRejected
	OrderStateExpired
	OrderStateFailed
	OrderStateHibernate
)

var orderStateNames = []string{
	"UNSPECIFIED", "PENDING", "ACTIVE", "FILLED", "CANCELED", "CANCEL_REQUESTED",
	"CANCEL_REJECTED", "EXPIRED", "FAILED", "HIBERNATE",
}

func (s OrderState) String() string { return enumName(orderStateNames, int32(s)) }

func ParseOrderState(s string) (OrderState, error) {
	v, err := parseEnum("order state", orderStateNames, s)
	return OrderState(v), err
}

// Open reports whether an order in this state still rests on the market and
// may be updated or canceled.
func (s OrderState) Open() bool {
	switch s {
	case OrderStatePending, OrderStateActive, OrderStateHibernate:
		return true
	}
	return false
}

type OrderType int32

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeLimit
	OrderTypeStopLimit
	OrderTypeIceberg
	OrderTypeBlock
	OrderTypeBalance
	OrderTypePrearranged
	OrderTypePrivate
)

var orderTypeNames = []string{"UNSPECIFIED", "LIMIT", "STOP_LIMIT", "ICEBERG", "BLOCK", "BALANCE", "PREARRANGED", "PRIVATE"}

func (t OrderType) String() string { return enumName(orderTypeNames, int32(t)) }

func ParseOrderType(s string) (OrderType, error) {
	v, err := parseEnum("order type", orderTypeNames, s)
	return OrderType(v), err
}

// OrderExecutionOption restricts how an order may be filled.
//   - AON: all or none
//   - FOK: fill or kill
//   - IOC: immediate or cancel
type OrderExecutionOption int32

const (
	OrderExecutionOptionUnspecified OrderExecutionOption = iota
	OrderExecutionOptionNone
	OrderExecutionOptionAON
	OrderExecutionOptionFOK
	OrderExecutionOptionIOC
)

var executionOptionNames = []string{"UNSPECIFIED", "NONE", "AON", "FOK", "IOC"}

func (o OrderExecutionOption) String() string { return enumName(executionOptionNames, int32(o)) }

func ParseOrderExecutionOption(s string) (OrderExecutionOption, error) {
	v, err := parseEnum("order execution option", executionOptionNames, s)
	return OrderExecutionOption(v), err
}

type TradeState int32

const (
	TradeStateUnspecified TradeState = iota
	TradeStateActive
	TradeStateCancelRequested
	TradeStateCancelRejected
	TradeStateCanceled
	TradeStateRecall
	TradeStateRecallRequested
	TradeStateRecallRejected
	TradeStateApprovalRequested
	TradeStateApproved
	TradeStateRejected
)

var tradeStateNames = []string{
	"UNSPECIFIED", "ACTIVE", "CANCEL_REQUESTED", "CANCEL_REJECTED", "CANCELED", "RECALL",
	"RECALL_REQUESTED", "RECALL_REJECTED", "APPROVAL_REQUESTED", "APPROVED", "REJECTED",
}

func (s TradeState) String() string { return enumName(tradeStateNames, int32(s)) }

func ParseTradeState(s string) (TradeState, error) {
	v, err := parseEnum("trade state", tradeStateNames, s)
	return TradeState(v), err
}

// StateReason explains the last transition of an order.
type StateReason int32

const (
	StateReasonUnspecified StateReason = iota
	StateReasonAdd
	StateReasonModify
	StateReasonDelete
	StateReasonDeactivate
	StateReasonReject
	StateReasonFullExecution
	StateReasonPartialExecution
	StateReasonValidityExpiration
)

var stateReasonNames = []string{
	"UNSPECIFIED", "ADD", "MODIFY", "DELETE", "DEACTIVATE", "REJECT", "FULL_EXECUTION",
	"PARTIAL_EXECUTION", "VALIDITY_EXPIRATION",
}

func (r StateReason) String() string { return enumName(stateReasonNames, int32(r)) }

func ParseStateReason(s string) (StateReason, error) {
	v, err := parseEnum("state reason", stateReasonNames, s)
	return StateReason(v), err
}

// MarketActor is who caused the last transition of an order.
type MarketActor int32

const (
	MarketActorUnspecified MarketActor = iota
	MarketActorUser
	MarketActorMarketOperator
	MarketActorSystem
)

var marketActorNames = []string{"UNSPECIFIED", "USER", "MARKET_OPERATOR", "SYSTEM"}

func (a MarketActor) String() string { return enumName(marketActorNames, int32(a)) }

func ParseMarketActor(s string) (MarketActor, error) {
	v, err := parseEnum("market actor", marketActorNames, s)
	return MarketActor(v), err
}

func enumName(names []string, v int32) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("UNKNOWN(%d)", v)
	}
	return names[v]
}

func parseEnum(kind string, names []string, s string) (int32, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == u {
			return int32(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalid, kind, s)
}

// knownEnum maps out-of-range wire values to zero (UNSPECIFIED).
func knownEnum(names []string, v int32) int32 {
	if v < 0 || int(v) >= len(names) {
		return 0
	}
	return v
}

func CurrencyFromWire(v int32) Currency { return Currency(knownEnum(currencyNames, v)) }
func EnergyMarketCodeTypeFromWire(v int32) EnergyMarketCodeType {
	return EnergyMarketCodeType(knownEnum(codeTypeNames, v))
}
func MarketSideFromWire(v int32) MarketSide { return MarketSide(knownEnum(marketSideNames, v)) }
func OrderStateFromWire(v int32) OrderState { return OrderState(knownEnum(orderStateNames, v)) }
func OrderTypeFromWire(v int32) OrderType   { return OrderType(knownEnum(orderTypeNames, v)) }
func OrderExecutionOptionFromWire(v int32) OrderExecutionOption {
	return OrderExecutionOption(knownEnum(executionOptionNames, v))
}
func TradeStateFromWire(v int32) TradeState   { return TradeState(knownEnum(tradeStateNames, v)) }
func StateReasonFromWire(v int32) StateReason { return StateReason(knownEnum(stateReasonNames, v)) }
func MarketActorFromWire(v int32) MarketActor { return MarketActor(knownEnum(marketActorNames, v)) }
