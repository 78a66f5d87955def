// Package dto holds the JSON shapes of the HTTP gateway. Enums travel as
// their upper-case names, decimals as strings.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

type DeliveryArea struct {
	Code     string `json:"code" binding:"required"`
	CodeType string `json:"code_type" binding:"required"`
}

type DeliveryPeriod struct {
	Start    time.Time `json:"start" binding:"required"`
	Duration string    `json:"duration" binding:"required"`
}

type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required"`
}

type Order struct {
	DeliveryArea    DeliveryArea     `json:"delivery_area"`
	DeliveryPeriod  DeliveryPeriod   `json:"delivery_period"`
	Type            string           `json:"type" binding:"required"`
	Side            string           `json:"side" binding:"required"`
	Price           Price            `json:"price"`
	QuantityMWh     decimal.Decimal  `json:"quantity_mwh"`
	StopPrice       *Price           `json:"stop_price,omitempty"`
	PeakPriceDelta  *Price           `json:"peak_price_delta,omitempty"`
	DisplayQuantity *decimal.Decimal `json:"display_quantity_mwh,omitempty"`
	ExecutionOption string           `json:"execution_option,omitempty"`
	ValidUntil      *time.Time       `json:"valid_until,omitempty"`
	Payload         map[string]any   `json:"payload,omitempty"`
	Tag             string           `json:"tag,omitempty"`
}

type UpdateOrder struct {
	Price           *Price           `json:"price,omitempty"`
	QuantityMWh     *decimal.Decimal `json:"quantity_mwh,omitempty"`
	ExecutionOption *string          `json:"execution_option,omitempty"`
	ValidUntil      *time.Time       `json:"valid_until,omitempty"`
	Payload         map[string]any   `json:"payload,omitempty"`
	Tag             *string          `json:"tag,omitempty"`
	Clear           []string         `json:"clear,omitempty"`
}

type OrderDetail struct {
	OrderID           int64           `json:"order_id"`
	Order             Order           `json:"order"`
	State             string          `json:"state"`
	StateReason       string          `json:"state_reason"`
	MarketActor       string          `json:"market_actor"`
	OpenQuantityMWh   decimal.Decimal `json:"open_quantity_mwh"`
	FilledQuantityMWh decimal.Decimal `json:"filled_quantity_mwh"`
	CreateTime        time.Time       `json:"create_time"`
	ModificationTime  time.Time       `json:"modification_time"`
}

type PublicTrade struct {
	ID               int64           `json:"id"`
	BuyDeliveryArea  DeliveryArea    `json:"buy_delivery_area"`
	SellDeliveryArea DeliveryArea    `json:"sell_delivery_area"`
	DeliveryPeriod   DeliveryPeriod  `json:"delivery_period"`
	ExecutionTime    time.Time       `json:"execution_time"`
	Price            Price           `json:"price"`
	QuantityMWh      decimal.Decimal `json:"quantity_mwh"`
	State            string          `json:"state"`
}

type Pagination struct {
	TotalItems    int32  `json:"total_items"`
	PageSize      int32  `json:"page_size"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

type OrderPage struct {
	Orders     []OrderDetail `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

type TradePage struct {
	Trades     []PublicTrade `json:"trades"`
	Pagination Pagination    `json:"pagination"`
}

type CancelAllResponse struct {
	GridpoolID int64 `json:"gridpool_id"`
}

// OrderQuery is the query string of an order listing or stream.
type OrderQuery struct {
	States        []string   `form:"state"`
	Side          string     `form:"side"`
	DeliveryStart *time.Time `form:"delivery_start" time_format:"2006-01-02T15:04:05Z07:00"`
	Duration      string     `form:"duration"`
	AreaCode      string     `form:"area_code"`
	AreaCodeType  string     `form:"area_code_type"`
	Tag           string     `form:"tag"`
	PageSize      int32      `form:"page_size"`
	PageToken     string     `form:"page_token"`
}

// TradeQuery is the query string of a public trade listing or stream.
type TradeQuery struct {
	States        []string   `form:"state"`
	DeliveryStart *time.Time `form:"delivery_start" time_format:"2006-01-02T15:04:05Z07:00"`
	Duration      string     `form:"duration"`
	BuyAreaCode   string     `form:"buy_area_code"`
	SellAreaCode  string     `form:"sell_area_code"`
	AreaCodeType  string     `form:"area_code_type"`
	PageSize      int32      `form:"page_size"`
	PageToken     string     `form:"page_token"`
}

func (q OrderQuery) Pagination() domain.PaginationParams {
	return domain.PaginationParams{PageSize: q.PageSize, PageToken: q.PageToken}
}

func (q TradeQuery) Pagination() domain.PaginationParams {
	return domain.PaginationParams{PageSize: q.PageSize, PageToken: q.PageToken}
}
