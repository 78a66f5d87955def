package tradingpb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

func TimeToProto(t time.Time) *timestamppb.Timestamp { return timestamppb.New(t) }

func optionalTimeToProto(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

func timeFromProto(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

func optionalTimeFromProto(ts *timestamppb.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.AsTime()
	return &t
}

func decimalToProto(d decimal.Decimal) *Decimal { return &Decimal{Value: d.String()} }

func decimalFromProto(d *Decimal) (decimal.Decimal, error) {
	if d == nil || d.Value == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(d.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", d.Value, err)
	}
	return v, nil
}

func PriceToProto(p domain.Price) *Price {
	return &Price{Amount: decimalToProto(p.Amount), Currency: int32(p.Currency)}
}

func optionalPriceToProto(p *domain.Price) *Price {
	if p == nil {
		return nil
	}
	return PriceToProto(*p)
}

func PriceFromProto(p *Price) (domain.Price, error) {
	if p == nil {
		return domain.Price{}, nil
	}
	amount, err := decimalFromProto(p.Amount)
	if err != nil {
		return domain.Price{}, fmt.Errorf("price: %w", err)
	}
	return domain.Price{Amount: amount, Currency: domain.CurrencyFromWire(p.Currency)}, nil
}

func optionalPriceFromProto(p *Price) (*domain.Price, error) {
	if p == nil {
		return nil, nil
	}
	v, err := PriceFromProto(p)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func EnergyToProto(e domain.Energy) *Energy { return &Energy{Mwh: decimalToProto(e.MWh)} }

func optionalEnergyToProto(e *domain.Energy) *Energy {
	if e == nil {
		return nil
	}
	return EnergyToProto(*e)
}

func EnergyFromProto(e *Energy) (domain.Energy, error) {
	if e == nil {
		return domain.Energy{}, nil
	}
	mwh, err := decimalFromProto(e.Mwh)
	if err != nil {
		return domain.Energy{}, fmt.Errorf("energy: %w", err)
	}
	return domain.Energy{MWh: mwh}, nil
}

func optionalEnergyFromProto(e *Energy) (*domain.Energy, error) {
	if e == nil {
		return nil, nil
	}
	v, err := EnergyFromProto(e)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func DeliveryAreaToProto(a domain.DeliveryArea) *DeliveryArea {
	return &DeliveryArea{Code: a.Code, CodeType: int32(a.CodeType)}
}

func DeliveryAreaFromProto(a *DeliveryArea) domain.DeliveryArea {
	if a == nil {
		return domain.DeliveryArea{}
	}
	return domain.DeliveryArea{Code: a.Code, CodeType: domain.EnergyMarketCodeTypeFromWire(a.CodeType)}
}

func DeliveryPeriodToProto(p domain.DeliveryPeriod) *DeliveryPeriod {
	return &DeliveryPeriod{Start: timestamppb.New(p.Start), Duration: int32(p.Duration)}
}

func DeliveryPeriodFromProto(p *DeliveryPeriod) domain.DeliveryPeriod {
	if p == nil {
		return domain.DeliveryPeriod{}
	}
	return domain.DeliveryPeriod{
		Start:    timeFromProto(p.Start).UTC(),
		Duration: domain.DeliveryDurationFromWire(p.Duration),
	}
}

func PayloadToProto(m map[string]any) (*Payload, error) {
	if m == nil {
		return nil, nil
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return &Payload{Struct: s}, nil
}

func PayloadFromProto(p *Payload) map[string]any {
	if p == nil || p.Struct == nil {
		return nil
	}
	return p.Struct.AsMap()
}

func OrderToProto(o domain.Order) (*Order, error) {
	payload, err := PayloadToProto(o.Payload)
	if err != nil {
		return nil, err
	}
	return &Order{
		DeliveryArea:    DeliveryAreaToProto(o.DeliveryArea),
		DeliveryPeriod:  DeliveryPeriodToProto(o.DeliveryPeriod),
		Type:            int32(o.Type),
		Side:            int32(o.Side),
		Price:           PriceToProto(o.Price),
		Quantity:        EnergyToProto(o.Quantity),
		StopPrice:       optionalPriceToProto(o.StopPrice),
		PeakPriceDelta:  optionalPriceToProto(o.PeakPriceDelta),
		DisplayQuantity: optionalEnergyToProto(o.DisplayQuantity),
		ExecutionOption: int32(o.ExecutionOption),
		ValidUntil:      optionalTimeToProto(o.ValidUntil),
		Payload:         payload,
		Tag:             o.Tag,
	}, nil
}

func OrderFromProto(o *Order) (domain.Order, error) {
	if o == nil {
		return domain.Order{}, fmt.Errorf("%w: missing order", domain.ErrInvalid)
	}
	price, err := PriceFromProto(o.Price)
	if err != nil {
		return domain.Order{}, err
	}
	quantity, err := EnergyFromProto(o.Quantity)
	if err != nil {
		return domain.Order{}, err
	}
	stop, err := optionalPriceFromProto(o.StopPrice)
	if err != nil {
		return domain.Order{}, err
	}
	peak, err := optionalPriceFromProto(o.PeakPriceDelta)
	if err != nil {
		return domain.Order{}, err
	}
	display, err := optionalEnergyFromProto(o.DisplayQuantity)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		DeliveryArea:    DeliveryAreaFromProto(o.DeliveryArea),
		DeliveryPeriod:  DeliveryPeriodFromProto(o.DeliveryPeriod),
		Type:            domain.OrderTypeFromWire(o.Type),
		Side:            domain.MarketSideFromWire(o.Side),
		Price:           price,
		Quantity:        quantity,
		StopPrice:       stop,
		PeakPriceDelta:  peak,
		DisplayQuantity: display,
		ExecutionOption: domain.OrderExecutionOptionFromWire(o.ExecutionOption),
		ValidUntil:      optionalTimeFromProto(o.ValidUntil),
		Payload:         PayloadFromProto(o.Payload),
		Tag:             o.Tag,
	}, nil
}

func OrderDetailToProto(d domain.OrderDetail) (*OrderDetail, error) {
	o, err := OrderToProto(d.Order)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		OrderId: d.OrderID,
		Order:   o,
		StateDetail: &StateDetail{
			State:       int32(d.StateDetail.State),
			StateReason: int32(d.StateDetail.StateReason),
			MarketActor: int32(d.StateDetail.MarketActor),
		},
		OpenQuantity:     EnergyToProto(d.OpenQuantity),
		FilledQuantity:   EnergyToProto(d.FilledQuantity),
		CreateTime:       TimeToProto(d.CreateTime),
		ModificationTime: TimeToProto(d.ModificationTime),
	}, nil
}

func OrderDetailFromProto(d *OrderDetail) (domain.OrderDetail, error) {
	if d == nil {
		return domain.OrderDetail{}, fmt.Errorf("%w: missing order detail", domain.ErrInvalid)
	}
	o, err := OrderFromProto(d.Order)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("order %d: %w", d.OrderId, err)
	}
	open, err := EnergyFromProto(d.OpenQuantity)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	filled, err := EnergyFromProto(d.FilledQuantity)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	var sd domain.StateDetail
	if d.StateDetail != nil {
		sd = domain.StateDetail{
			State:       domain.OrderStateFromWire(d.StateDetail.State),
			StateReason: domain.StateReasonFromWire(d.StateDetail.StateReason),
			MarketActor: domain.MarketActorFromWire(d.StateDetail.MarketActor),
		}
	}
	return domain.OrderDetail{
		OrderID:          d.OrderId,
		Order:            o,
		StateDetail:      sd,
		OpenQuantity:     open,
		FilledQuantity:   filled,
		CreateTime:       timeFromProto(d.CreateTime),
		ModificationTime: timeFromProto(d.ModificationTime),
	}, nil
}

// UpdateOrderToProto converts u and derives its update mask.
func UpdateOrderToProto(u domain.UpdateOrder) (*UpdateOrder, *fieldmaskpb.FieldMask, error) {
	payload, err := PayloadToProto(u.Payload)
	if err != nil {
		return nil, nil, err
	}
	out := &UpdateOrder{
		Price:           optionalPriceToProto(u.Price),
		Quantity:        optionalEnergyToProto(u.Quantity),
		StopPrice:       optionalPriceToProto(u.StopPrice),
		PeakPriceDelta:  optionalPriceToProto(u.PeakPriceDelta),
		DisplayQuantity: optionalEnergyToProto(u.DisplayQuantity),
		ValidUntil:      optionalTimeToProto(u.ValidUntil),
		Payload:         payload,
		Tag:             u.Tag,
	}
	if u.ExecutionOption != nil {
		v := int32(*u.ExecutionOption)
		out.ExecutionOption = &v
	}
	return out, &fieldmaskpb.FieldMask{Paths: u.Paths()}, nil
}

// UpdateOrderFromProto converts an update and returns the mask paths to apply.
func UpdateOrderFromProto(u *UpdateOrder, mask *fieldmaskpb.FieldMask) (domain.UpdateOrder, []string, error) {
	if u == nil {
		u = &UpdateOrder{}
	}
	price, err := optionalPriceFromProto(u.Price)
	if err != nil {
		return domain.UpdateOrder{}, nil, err
	}
	quantity, err := optionalEnergyFromProto(u.Quantity)
	if err != nil {
		return domain.UpdateOrder{}, nil, err
	}
	stop, err := optionalPriceFromProto(u.StopPrice)
	if err != nil {
		return domain.UpdateOrder{}, nil, err
	}
	peak, err := optionalPriceFromProto(u.PeakPriceDelta)
	if err != nil {
		return domain.UpdateOrder{}, nil, err
	}
	display, err := optionalEnergyFromProto(u.DisplayQuantity)
	if err != nil {
		return domain.UpdateOrder{}, nil, err
	}
	out := domain.UpdateOrder{
		Price:           price,
		Quantity:        quantity,
		StopPrice:       stop,
		PeakPriceDelta:  peak,
		DisplayQuantity: display,
		ValidUntil:      optionalTimeFromProto(u.ValidUntil),
		Payload:         PayloadFromProto(u.Payload),
		Tag:             u.Tag,
	}
	if u.ExecutionOption != nil {
		v := domain.OrderExecutionOptionFromWire(*u.ExecutionOption)
		out.ExecutionOption = &v
	}
	paths := mask.GetPaths()
	for _, p := range paths {
		if _, err := domain.ParseUpdateField(p); err != nil {
			return domain.UpdateOrder{}, nil, err
		}
	}
	return out, paths, nil
}

func PublicTradeToProto(t domain.PublicTrade) *PublicTrade {
	return &PublicTrade{
		Id:               t.ID,
		BuyDeliveryArea:  DeliveryAreaToProto(t.BuyDeliveryArea),
		SellDeliveryArea: DeliveryAreaToProto(t.SellDeliveryArea),
		DeliveryPeriod:   DeliveryPeriodToProto(t.DeliveryPeriod),
		ExecutionTime:    TimeToProto(t.ExecutionTime),
		Price:            PriceToProto(t.Price),
		Quantity:         EnergyToProto(t.Quantity),
		State:            int32(t.State),
	}
}

func PublicTradeFromProto(t *PublicTrade) (domain.PublicTrade, error) {
	if t == nil {
		return domain.PublicTrade{}, fmt.Errorf("%w: missing public trade", domain.ErrInvalid)
	}
	price, err := PriceFromProto(t.Price)
	if err != nil {
		return domain.PublicTrade{}, fmt.Errorf("trade %d: %w", t.Id, err)
	}
	quantity, err := EnergyFromProto(t.Quantity)
	if err != nil {
		return domain.PublicTrade{}, fmt.Errorf("trade %d: %w", t.Id, err)
	}
	return domain.PublicTrade{
		ID:               t.Id,
		BuyDeliveryArea:  DeliveryAreaFromProto(t.BuyDeliveryArea),
		SellDeliveryArea: DeliveryAreaFromProto(t.SellDeliveryArea),
		DeliveryPeriod:   DeliveryPeriodFromProto(t.DeliveryPeriod),
		ExecutionTime:    timeFromProto(t.ExecutionTime),
		Price:            price,
		Quantity:         quantity,
		State:            domain.TradeStateFromWire(t.State),
	}, nil
}

func enumsToProto[T ~int32](vs []T) []int32 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]int32, len(vs))
	for i, v := range vs {
		out[i] = int32(v)
	}
	return out
}

func GridpoolOrderFilterToProto(f domain.GridpoolOrderFilter) *GridpoolOrderFilter {
	out := &GridpoolOrderFilter{States: enumsToProto(f.States), Tag: f.Tag}
	if f.Side != nil {
		v := int32(*f.Side)
		out.Side = &v
	}
	if f.DeliveryPeriod != nil {
		out.DeliveryPeriod = DeliveryPeriodToProto(*f.DeliveryPeriod)
	}
	if f.DeliveryArea != nil {
		out.DeliveryArea = DeliveryAreaToProto(*f.DeliveryArea)
	}
	return out
}

func GridpoolOrderFilterFromProto(f *GridpoolOrderFilter) domain.GridpoolOrderFilter {
	if f == nil {
		return domain.GridpoolOrderFilter{}
	}
	out := domain.GridpoolOrderFilter{Tag: f.Tag}
	for _, s := range f.States {
		out.States = append(out.States, domain.OrderStateFromWire(s))
	}
	if f.Side != nil {
		v := domain.MarketSideFromWire(*f.Side)
		out.Side = &v
	}
	if f.DeliveryPeriod != nil {
		p := DeliveryPeriodFromProto(f.DeliveryPeriod)
		out.DeliveryPeriod = &p
	}
	if f.DeliveryArea != nil {
		a := DeliveryAreaFromProto(f.DeliveryArea)
		out.DeliveryArea = &a
	}
	return out
}

func PublicTradeFilterToProto(f domain.PublicTradeFilter) *PublicTradeFilter {
	out := &PublicTradeFilter{States: enumsToProto(f.States)}
	if f.DeliveryPeriod != nil {
		out.DeliveryPeriod = DeliveryPeriodToProto(*f.DeliveryPeriod)
	}
	if f.BuyDeliveryArea != nil {
		out.BuyDeliveryArea = DeliveryAreaToProto(*f.BuyDeliveryArea)
	}
	if f.SellDeliveryArea != nil {
		out.SellDeliveryArea = DeliveryAreaToProto(*f.SellDeliveryArea)
	}
	return out
}

func PublicTradeFilterFromProto(f *PublicTradeFilter) domain.PublicTradeFilter {
	if f == nil {
		return domain.PublicTradeFilter{}
	}
	var out domain.PublicTradeFilter
	for _, s := range f.States {
		out.States = append(out.States, domain.TradeStateFromWire(s))
	}
	if f.DeliveryPeriod != nil {
		p := DeliveryPeriodFromProto(f.DeliveryPeriod)
		out.DeliveryPeriod = &p
	}
	if f.BuyDeliveryArea != nil {
		a := DeliveryAreaFromProto(f.BuyDeliveryArea)
		out.BuyDeliveryArea = &a
	}
	if f.SellDeliveryArea != nil {
		a := DeliveryAreaFromProto(f.SellDeliveryArea)
		out.SellDeliveryArea = &a
	}
	return out
}

func PaginationParamsToProto(p domain.PaginationParams) *PaginationParams {
	return &PaginationParams{PageSize: p.PageSize, PageToken: p.PageToken}
}

func PaginationParamsFromProto(p *PaginationParams) domain.PaginationParams {
	if p == nil {
		return domain.PaginationParams{}
	}
	return domain.PaginationParams{PageSize: p.PageSize, PageToken: p.PageToken}
}

func PaginationInfoToProto(p domain.PaginationInfo) *PaginationInfo {
	return &PaginationInfo{TotalItems: p.TotalItems, PageSize: p.PageSize, NextPageToken: p.NextPageToken}
}

func PaginationInfoFromProto(p *PaginationInfo) domain.PaginationInfo {
	if p == nil {
		return domain.PaginationInfo{}
	}
	return domain.PaginationInfo{TotalItems: p.TotalItems, PageSize: p.PageSize, NextPageToken: p.NextPageToken}
}
