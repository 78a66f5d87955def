// Package tradingpb holds the wire messages of the electricity trading
// gRPC service, the codec that carries them and the service descriptor.
package tradingpb

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Decimal is a decimal number in its canonical string form.
type Decimal struct {
	Value string `json:"value"`
}

type Price struct {
	Amount   *Decimal `json:"amount,omitempty"`
	Currency int32    `json:"currency,omitempty"`
}

type Energy struct {
	Mwh *Decimal `json:"mwh,omitempty"`
}

type DeliveryArea struct {
	Code     string `json:"code,omitempty"`
	CodeType int32  `json:"code_type,omitempty"`
}

type DeliveryPeriod struct {
	Start    *timestamppb.Timestamp `json:"start,omitempty"`
	Duration int32                  `json:"duration,omitempty"`
}

// Payload wraps a structpb.Struct so that it travels in its protojson form.
type Payload struct {
	*structpb.Struct
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.Struct == nil {
		return []byte("null"), nil
	}
	return protojson.Marshal(p.Struct)
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		p.Struct = nil
		return nil
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return err
	}
	p.Struct = s
	return nil
}

type Order struct {
	DeliveryArea    *DeliveryArea          `json:"delivery_area,omitempty"`
	DeliveryPeriod  *DeliveryPeriod        `json:"delivery_period,omitempty"`
	Type            int32                  `json:"type,omitempty"`
	Side            int32                  `json:"side,omitempty"`
	Price           *Price                 `json:"price,omitempty"`
	Quantity        *Energy                `json:"quantity,omitempty"`
	StopPrice       *Price                 `json:"stop_price,omitempty"`
	PeakPriceDelta  *Price                 `json:"peak_price_delta,omitempty"`
	DisplayQuantity *Energy                `json:"display_quantity,omitempty"`
	ExecutionOption int32                  `json:"execution_option,omitempty"`
	ValidUntil      *timestamppb.Timestamp `json:"valid_until,omitempty"`
	Payload         *Payload               `json:"payload,omitempty"`
	Tag             string                 `json:"tag,omitempty"`
}

type UpdateOrder struct {
	Price           *Price                 `json:"price,omitempty"`
	Quantity        *Energy                `json:"quantity,omitempty"`
	StopPrice       *Price                 `json:"stop_price,omitempty"`
	PeakPriceDelta  *Price                 `json:"peak_price_delta,omitempty"`
	DisplayQuantity *Energy                `json:"display_quantity,omitempty"`
	ExecutionOption *int32                 `json:"execution_option,omitempty"`
	ValidUntil      *timestamppb.Timestamp `json:"valid_until,omitempty"`
	Payload         *Payload               `json:"payload,omitempty"`
	Tag             *string                `json:"tag,omitempty"`
}

type StateDetail struct {
	State       int32 `json:"state,omitempty"`
	StateReason int32 `json:"state_reason,omitempty"`
	MarketActor int32 `json:"market_actor,omitempty"`
}

type OrderDetail struct {
	OrderId          int64                  `json:"order_id,omitempty"`
	Order            *Order                 `json:"order,omitempty"`
	StateDetail      *StateDetail           `json:"state_detail,omitempty"`
	OpenQuantity     *Energy                `json:"open_quantity,omitempty"`
	FilledQuantity   *Energy                `json:"filled_quantity,omitempty"`
	CreateTime       *timestamppb.Timestamp `json:"create_time,omitempty"`
	ModificationTime *timestamppb.Timestamp `json:"modification_time,omitempty"`
}

type PublicTrade struct {
	Id               int64                  `json:"id,omitempty"`
	BuyDeliveryArea  *DeliveryArea          `json:"buy_delivery_area,omitempty"`
	SellDeliveryArea *DeliveryArea          `json:"sell_delivery_area,omitempty"`
	DeliveryPeriod   *DeliveryPeriod        `json:"delivery_period,omitempty"`
	ExecutionTime    *timestamppb.Timestamp `json:"execution_time,omitempty"`
	Price            *Price                 `json:"price,omitempty"`
	Quantity         *Energy                `json:"quantity,omitempty"`
	State            int32                  `json:"state,omitempty"`
}

type GridpoolOrderFilter struct {
	States         []int32         `json:"states,omitempty"`
	Side           *int32          `json:"side,omitempty"`
	DeliveryPeriod *DeliveryPeriod `json:"delivery_period,omitempty"`
	DeliveryArea   *DeliveryArea   `json:"delivery_area,omitempty"`
	Tag            string          `json:"tag,omitempty"`
}

type PublicTradeFilter struct {
	States           []int32         `json:"states,omitempty"`
	DeliveryPeriod   *DeliveryPeriod `json:"delivery_period,omitempty"`
	BuyDeliveryArea  *DeliveryArea   `json:"buy_delivery_area,omitempty"`
	SellDeliveryArea *DeliveryArea   `json:"sell_delivery_area,omitempty"`
}

type PaginationParams struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type PaginationInfo struct {
	TotalItems    int32  `json:"total_items,omitempty"`
	PageSize      int32  `json:"page_size,omitempty"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

type CreateGridpoolOrderRequest struct {
	GridpoolId int64  `json:"gridpool_id,omitempty"`
	Order      *Order `json:"order,omitempty"`
}

type CreateGridpoolOrderResponse struct {
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

type UpdateGridpoolOrderRequest struct {
	GridpoolId        int64                  `json:"gridpool_id,omitempty"`
	OrderId           int64                  `json:"order_id,omitempty"`
	UpdateOrderFields *UpdateOrder           `json:"update_order_fields,omitempty"`
	UpdateMask        *fieldmaskpb.FieldMask `json:"update_mask,omitempty"`
}

type UpdateGridpoolOrderResponse struct {
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

type CancelGridpoolOrderRequest struct {
	GridpoolId int64 `json:"gridpool_id,omitempty"`
	OrderId    int64 `json:"order_id,omitempty"`
}

type CancelGridpoolOrderResponse struct {
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

type CancelAllGridpoolOrdersRequest struct {
	GridpoolId int64 `json:"gridpool_id,omitempty"`
}

type CancelAllGridpoolOrdersResponse struct {
	GridpoolId int64 `json:"gridpool_id,omitempty"`
}

type GetGridpoolOrderRequest struct {
	GridpoolId int64 `json:"gridpool_id,omitempty"`
	OrderId    int64 `json:"order_id,omitempty"`
}

type GetGridpoolOrderResponse struct {
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

type ListGridpoolOrdersRequest struct {
	GridpoolId       int64                `json:"gridpool_id,omitempty"`
	Filter           *GridpoolOrderFilter `json:"filter,omitempty"`
	PaginationParams *PaginationParams    `json:"pagination_params,omitempty"`
}

type ListGridpoolOrdersResponse struct {
	OrderDetails   []*OrderDetail  `json:"order_details,omitempty"`
	PaginationInfo *PaginationInfo `json:"pagination_info,omitempty"`
}

type ReceiveGridpoolOrdersStreamRequest struct {
	GridpoolId int64                `json:"gridpool_id,omitempty"`
	Filter     *GridpoolOrderFilter `json:"filter,omitempty"`
}

type ReceiveGridpoolOrdersStreamResponse struct {
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

type ListPublicTradesRequest struct {
	Filter           *PublicTradeFilter `json:"filter,omitempty"`
	PaginationParams *PaginationParams  `json:"pagination_params,omitempty"`
}

type ListPublicTradesResponse struct {
	PublicTrades   []*PublicTrade  `json:"public_trades,omitempty"`
	PaginationInfo *PaginationInfo `json:"pagination_info,omitempty"`
}

type ReceivePublicTradesStreamRequest struct {
	Filter *PublicTradeFilter `json:"filter,omitempty"`
}

type ReceivePublicTradesStreamResponse struct {
	PublicTrade *PublicTrade `json:"public_trade,omitempty"`
}
