package electricitytrading

import "github.com/olyamironova/electricity-trading-client/internal/domain"

type (
	Currency             = domain.Currency
	DeliveryArea         = domain.DeliveryArea
	DeliveryDuration     = domain.DeliveryDuration
	DeliveryPeriod       = domain.DeliveryPeriod
	Energy               = domain.Energy
	EnergyMarketCodeType = domain.EnergyMarketCodeType
	GridpoolOrderFilter  = domain.GridpoolOrderFilter
	MarketActor          = domain.MarketActor
	MarketSide           = domain.MarketSide
	Order                = domain.Order
	OrderDetail          = domain.OrderDetail
	OrderExecutionOption = domain.OrderExecutionOption
	OrderState           = domain.OrderState
	OrderType            = domain.OrderType
	PaginationInfo       = domain.PaginationInfo
	PaginationParams     = domain.PaginationParams
	Price                = domain.Price
	PublicTrade          = domain.PublicTrade
	PublicTradeFilter    = domain.PublicTradeFilter
	StateDetail          = domain.StateDetail
	StateReason          = domain.StateReason
	TradeState           = domain.TradeState
	UpdateField          = domain.UpdateField
	UpdateOrder          = domain.UpdateOrder
)

const (
	CurrencyUnspecified = domain.CurrencyUnspecified
	CurrencyUSD         = domain.CurrencyUSD
	CurrencyCAD         = domain.CurrencyCAD
	CurrencyEUR         = domain.CurrencyEUR
	CurrencyGBP         = domain.CurrencyGBP
	CurrencyCHF         = domain.CurrencyCHF
	CurrencyCNY         = domain.CurrencyCNY
	CurrencyJPY         = domain.CurrencyJPY
	CurrencyAUD         = domain.CurrencyAUD
	CurrencyNZD         = domain.CurrencyNZD
	CurrencySGD         = domain.CurrencySGD
)

const (
	DeliveryDurationUnspecified = domain.DeliveryDurationUnspecified
	DeliveryDurationMinutes5    = domain.DeliveryDurationMinutes5
	DeliveryDurationMinutes15   = domain.DeliveryDurationMinutes15
	DeliveryDurationMinutes30   = domain.DeliveryDurationMinutes30
	DeliveryDurationMinutes60   = domain.DeliveryDurationMinutes60
)

const (
	EnergyMarketCodeTypeUnspecified = domain.EnergyMarketCodeTypeUnspecified
	EnergyMarketCodeTypeEuropeEIC   = domain.EnergyMarketCodeTypeEuropeEIC
	EnergyMarketCodeTypeUSNERC      = domain.EnergyMarketCodeTypeUSNERC
)

const (
	MarketSideUnspecified = domain.MarketSideUnspecified
	MarketSideBuy         = domain.MarketSideBuy
	MarketSideSell        = domain.MarketSideSell
)

const (
	OrderStateUnspecified     = domain.OrderStateUnspecified
	OrderStatePending         = domain.OrderStatePending
	OrderStateActive          = domain.OrderStateActive
	OrderStateFilled          = domain.OrderStateFilled
	OrderStateCanceled        = domain.OrderStateCanceled
	OrderStateCancelRequested = domain.OrderStateCancelRequested
	OrderStateCancelRejected  = domain.OrderStateCancelRejected
	OrderStateExpired         = domain.OrderStateExpired
	OrderStateFailed          = domain.OrderStateFailed
	OrderStateHibernate       = domain.OrderStateHibernate
)

const (
	OrderTypeUnspecified = domain.OrderTypeUnspecified
	OrderTypeLimit       = domain.OrderTypeLimit
	OrderTypeStopLimit   = domain.OrderTypeStopLimit
	OrderTypeIceberg     = domain.OrderTypeIceberg
	OrderTypeBlock       = domain.OrderTypeBlock
	OrderTypeBalance     = domain.OrderTypeBalance
	OrderTypePrearranged = domain.OrderTypePrearranged
	OrderTypePrivate     = domain.OrderTypePrivate
)

const (
	OrderExecutionOptionUnspecified = domain.OrderExecutionOptionUnspecified
	OrderExecutionOptionNone        = domain.OrderExecutionOptionNone
	OrderExecutionOptionAON         = domain.OrderExecutionOptionAON
	OrderExecutionOptionFOK         = domain.OrderExecutionOptionFOK
	OrderExecutionOptionIOC         = domain.OrderExecutionOptionIOC
)

const (
	TradeStateUnspecified       = domain.TradeStateUnspecified
	TradeStateActive            = domain.TradeStateActive
	TradeStateCancelRequested   = domain.TradeStateCancelRequested
	TradeStateCancelRejected    = domain.TradeStateCancelRejected
	TradeStateCanceled          = domain.TradeStateCanceled
	TradeStateRecall            = domain.TradeStateRecall
	TradeStateRecallRequested   = domain.TradeStateRecallRequested
	TradeStateRecallRejected    = domain.TradeStateRecallRejected
	TradeStateApprovalRequested = domain.TradeStateApprovalRequested
	TradeStateApproved          = domain.TradeStateApproved
	TradeStateRejected          = domain.TradeStateRejected
)

const (
	UpdateFieldPrice           = domain.UpdateFieldPrice
	UpdateFieldQuantity        = domain.UpdateFieldQuantity
	UpdateFieldStopPrice       = domain.UpdateFieldStopPrice
	UpdateFieldPeakPriceDelta  = domain.UpdateFieldPeakPriceDelta
	UpdateFieldDisplayQuantity = domain.UpdateFieldDisplayQuantity
	UpdateFieldExecutionOption = domain.UpdateFieldExecutionOption
	UpdateFieldValidUntil      = domain.UpdateFieldValidUntil
	UpdateFieldPayload         = domain.UpdateFieldPayload
	UpdateFieldTag             = domain.UpdateFieldTag
)

var (
	NewDeliveryPeriod = domain.NewDeliveryPeriod
	NewPrice          = domain.NewPrice
	NewEnergy         = domain.NewEnergy
)
