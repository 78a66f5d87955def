package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

func (a DeliveryArea) ToDomain() (domain.DeliveryArea, error) {
	ct, err := domain.ParseEnergyMarketCodeType(a.CodeType)
	if err != nil {
		return domain.DeliveryArea{}, err
	}
	return domain.DeliveryArea{Code: a.Code, CodeType: ct}, nil
}

func FromDeliveryArea(a domain.DeliveryArea) DeliveryArea {
	return DeliveryArea{Code: a.Code, CodeType: a.CodeType.String()}
}

func (p DeliveryPeriod) ToDomain() (domain.DeliveryPeriod, error) {
	d, err := domain.ParseDeliveryDuration(p.Duration)
	if err != nil {
		return domain.DeliveryPeriod{}, err
	}
	return domain.DeliveryPeriod{Start: p.Start.UTC(), Duration: d}, nil
}

func FromDeliveryPeriod(p domain.DeliveryPeriod) DeliveryPeriod {
	return DeliveryPeriod{Start: p.Start.UTC(), Duration: p.Duration.String()}
}

func (p Price) ToDomain() (domain.Price, error) {
	c, err := domain.ParseCurrency(p.Currency)
	if err != nil {
		return domain.Price{}, err
	}
	return domain.Price{Amount: p.Amount, Currency: c}, nil
}

func FromPrice(p domain.Price) Price {
	return Price{Amount: p.Amount, Currency: p.Currency.String()}
}

func optionalPrice(p *Price) (*domain.Price, error) {
	if p == nil {
		return nil, nil
	}
	v, err := p.ToDomain()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromOptionalPrice(p *domain.Price) *Price {
	if p == nil {
		return nil
	}
	v := FromPrice(*p)
	return &v
}

func optionalEnergy(d *decimal.Decimal) *domain.Energy {
	if d == nil {
		return nil
	}
	return &domain.Energy{MWh: *d}
}

func (o Order) ToDomain() (domain.Order, error) {
	var (
		out domain.Order
		err error
	)
	if out.DeliveryArea, err = o.DeliveryArea.ToDomain(); err != nil {
		return domain.Order{}, err
	}
	if out.DeliveryPeriod, err = o.DeliveryPeriod.ToDomain(); err != nil {
		return domain.Order{}, err
	}
	if out.Type, err = domain.ParseOrderType(o.Type); err != nil {
		return domain.Order{}, err
	}
	if out.Side, err = domain.ParseMarketSide(o.Side); err != nil {
		return domain.Order{}, err
	}
	if out.Price, err = o.Price.ToDomain(); err != nil {
		return domain.Order{}, err
	}
	if out.StopPrice, err = optionalPrice(o.StopPrice); err != nil {
		return domain.Order{}, err
	}
	if out.PeakPriceDelta, err = optionalPrice(o.PeakPriceDelta); err != nil {
		return domain.Order{}, err
	}
	if o.ExecutionOption != "" {
		if out.ExecutionOption, err = domain.ParseOrderExecutionOption(o.ExecutionOption); err != nil {
			return domain.Order{}, err
		}
	}
	out.Quantity = domain.Energy{MWh: o.QuantityMWh}
	out.DisplayQuantity = optionalEnergy(o.DisplayQuantity)
	out.ValidUntil = o.ValidUntil
	out.Payload = o.Payload
	out.Tag = o.Tag
	return out, nil
}

func FromOrder(o domain.Order) Order {
	out := Order{
		DeliveryArea:   FromDeliveryArea(o.DeliveryArea),
		DeliveryPeriod: FromDeliveryPeriod(o.DeliveryPeriod),
		Type:           o.Type.String(),
		Side:           o.Side.String(),
		Price:          FromPrice(o.Price),
		QuantityMWh:    o.Quantity.MWh,
		StopPrice:      fromOptionalPrice(o.StopPrice),
		PeakPriceDelta: fromOptionalPrice(o.PeakPriceDelta),
		ValidUntil:     o.ValidUntil,
		Payload:        o.Payload,
		Tag:            o.Tag,
	}
	if o.DisplayQuantity != nil {
		out.DisplayQuantity = &o.DisplayQuantity.MWh
	}
	if o.ExecutionOption != domain.OrderExecutionOptionUnspecified {
		out.ExecutionOption = o.ExecutionOption.String()
	}
	return out
}

func (u UpdateOrder) ToDomain() (domain.UpdateOrder, error) {
	price, err := optionalPrice(u.Price)
	if err != nil {
		return domain.UpdateOrder{}, err
	}
	out := domain.UpdateOrder{
		Price:      price,
		Quantity:   optionalEnergy(u.QuantityMWh),
		ValidUntil: u.ValidUntil,
		Payload:    u.Payload,
		Tag:        u.Tag,
	}
	if u.ExecutionOption != nil {
		opt, err := domain.ParseOrderExecutionOption(*u.ExecutionOption)
		if err != nil {
			return domain.UpdateOrder{}, err
		}
		out.ExecutionOption = &opt
	}
	for _, c := range u.Clear {
		f, err := domain.ParseUpdateField(c)
		if err != nil {
			return domain.UpdateOrder{}, err
		}
		out.Clear = append(out.Clear, f)
	}
	return out, nil
}

func FromOrderDetail(d domain.OrderDetail) OrderDetail {
	return OrderDetail{
		OrderID:           d.OrderID,
		Order:             FromOrder(d.Order),
		State:             d.StateDetail.State.String(),
		StateReason:       d.StateDetail.StateReason.String(),
		MarketActor:       d.StateDetail.MarketActor.String(),
		OpenQuantityMWh:   d.OpenQuantity.MWh,
		FilledQuantityMWh: d.FilledQuantity.MWh,
		CreateTime:        d.CreateTime,
		ModificationTime:  d.ModificationTime,
	}
}

func FromPublicTrade(t domain.PublicTrade) PublicTrade {
	return PublicTrade{
		ID:               t.ID,
		BuyDeliveryArea:  FromDeliveryArea(t.BuyDeliveryArea),
		SellDeliveryArea: FromDeliveryArea(t.SellDeliveryArea),
		DeliveryPeriod:   FromDeliveryPeriod(t.DeliveryPeriod),
		ExecutionTime:    t.ExecutionTime,
		Price:            FromPrice(t.Price),
		QuantityMWh:      t.Quantity.MWh,
		State:            t.State.String(),
	}
}

func FromPagination(p domain.PaginationInfo) Pagination {
	return Pagination{TotalItems: p.TotalItems, PageSize: p.PageSize, NextPageToken: p.NextPageToken}
}

func parseEnums[T any](names []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, n := range names {
		v, err := parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// period returns nil unless both start and duration are given.
func period(start *time.Time, duration string) (*domain.DeliveryPeriod, error) {
	if start == nil && duration == "" {
		return nil, nil
	}
	if start == nil || duration == "" {
		return nil, fmt.Errorf("%w: delivery_start and duration go together", domain.ErrInvalid)
	}
	p, err := DeliveryPeriod{Start: *start, Duration: duration}.ToDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func area(code, codeType string) (*domain.DeliveryArea, error) {
	if code == "" {
		return nil, nil
	}
	a, err := DeliveryArea{Code: code, CodeType: codeType}.ToDomain()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (q OrderQuery) Filter() (domain.GridpoolOrderFilter, error) {
	var (
		f   domain.GridpoolOrderFilter
		err error
	)
	if f.States, err = parseEnums(q.States, domain.ParseOrderState); err != nil {
		return f, err
	}
	if q.Side != "" {
		side, err := domain.ParseMarketSide(q.Side)
		if err != nil {
			return f, err
		}
		f.Side = &side
	}
	if f.DeliveryPeriod, err = period(q.DeliveryStart, q.Duration); err != nil {
		return f, err
	}
	if f.DeliveryArea, err = area(q.AreaCode, q.AreaCodeType); err != nil {
		return f, err
	}
	f.Tag = q.Tag
	return f, nil
}

func (q TradeQuery) Filter() (domain.PublicTradeFilter, error) {
	var (
		f   domain.PublicTradeFilter
		err error
	)
	if f.States, err = parseEnums(q.States, domain.ParseTradeState); err != nil {
		return f, err
	}
	if f.DeliveryPeriod, err = period(q.DeliveryStart, q.Duration); err != nil {
		return f, err
	}
	if f.BuyDeliveryArea, err = area(q.BuyAreaCode, q.AreaCodeType); err != nil {
		return f, err
	}
	if f.SellDeliveryArea, err = area(q.SellAreaCode, q.AreaCodeType); err != nil {
		return f, err
	}
	return f, nil
}
