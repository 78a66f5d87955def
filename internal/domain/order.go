package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a gridpool order as submitted to the market.
type Order struct {
	DeliveryArea   DeliveryArea
	DeliveryPeriod DeliveryPeriod
	Type           OrderType
	Side           MarketSide
	Price          Price
	Quantity       Energy

	StopPrice       *Price
	PeakPriceDelta  *Price
	DisplayQuantity *Energy

	ExecutionOption OrderExecutionOption
	ValidUntil      *time.Time
	Payload         map[string]any
	Tag             string
}

// StateDetail describes the current state of an order and how it got there.
type StateDetail struct {
	State       OrderState
	StateReason StateReason
	MarketActor MarketActor
}

// OrderDetail is an order together with its server-side state.
type OrderDetail struct {
	OrderID          int64
	Order            Order
	StateDetail      StateDetail
	OpenQuantity     Energy
	FilledQuantity   Energy
	CreateTime       time.Time
	ModificationTime time.Time
}

// Validate checks the quantity bookkeeping of d.
func (d OrderDetail) Validate() error {
	total := d.OpenQuantity.MWh.Add(d.FilledQuantity.MWh)
	if total.GreaterThan(d.Order.Quantity.MWh) {
		return fmt.Errorf("%w: open %s + filled %s exceed order quantity %s",
			ErrInvalid, d.OpenQuantity, d.FilledQuantity, d.Order.Quantity)
	}
	if d.OpenQuantity.MWh.IsNegative() || d.FilledQuantity.MWh.IsNegative() {
		return fmt.Errorf("%w: negative open or filled quantity", ErrInvalid)
	}
	return nil
}

// PartiallyFilled reports whether some but not all of the order was executed.
func (d OrderDetail) PartiallyFilled() bool {
	return d.FilledQuantity.MWh.GreaterThan(decimal.Zero) &&
		d.FilledQuantity.MWh.LessThan(d.Order.Quantity.MWh)
}

// UpdateField names a mutable order field as it appears in an update mask.
type UpdateField string

const (
	UpdateFieldPrice           UpdateField = "price"
	UpdateFieldQuantity        UpdateField = "quantity"
	UpdateFieldStopPrice       UpdateField = "stop_price"
	UpdateFieldPeakPriceDelta  UpdateField = "peak_price_delta"
	UpdateFieldDisplayQuantity UpdateField = "display_quantity"
	UpdateFieldExecutionOption UpdateField = "execution_option"
	UpdateFieldValidUntil      UpdateField = "valid_until"
	UpdateFieldPayload         UpdateField = "payload"
	UpdateFieldTag             UpdateField = "tag"
)

// UpdateFields lists every mutable field in mask order.
var UpdateFields = []UpdateField{
	UpdateFieldPrice, UpdateFieldQuantity, UpdateFieldStopPrice, UpdateFieldPeakPriceDelta,
	UpdateFieldDisplayQuantity, UpdateFieldExecutionOption, UpdateFieldValidUntil,
	UpdateFieldPayload, UpdateFieldTag,
}

func ParseUpdateField(s string) (UpdateField, error) {
	for _, f := range UpdateFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown update field %q", ErrInvalid, s)
}

// UpdateOrder carries the changes to apply to an existing order. Non-nil
// fields are set; fields listed in Clear are reset to their zero value.
type UpdateOrder struct {
	Price           *Price
	Quantity        *Energy
	StopPrice       *Price
	PeakPriceDelta  *Price
	DisplayQuantity *Energy
	ExecutionOption *OrderExecutionOption
	ValidUntil      *time.Time
	Payload         map[string]any
	Tag             *string

	Clear []UpdateField
}

func (u UpdateOrder) isSet(f UpdateField) bool {
	switch f {
	case UpdateFieldPrice:
		return u.Price != nil
	case UpdateFieldQuantity:
		return u.Quantity != nil
	case UpdateFieldStopPrice:
		return u.StopPrice != nil
	case UpdateFieldPeakPriceDelta:
		return u.PeakPriceDelta != nil
	case UpdateFieldDisplayQuantity:
		return u.DisplayQuantity != nil
	case UpdateFieldExecutionOption:
		return u.ExecutionOption != nil
	case UpdateFieldValidUntil:
		return u.ValidUntil != nil
	case UpdateFieldPayload:
		return u.Payload != nil
	case UpdateFieldTag:
		return u.Tag != nil
	}
	return false
}

func (u UpdateOrder) cleared(f UpdateField) bool {
	for _, c := range u.Clear {
		if c == f {
			return true
		}
	}
	return false
}

// Paths returns the update mask: set and cleared fields in UpdateFields order.
func (u UpdateOrder) Paths() []string {
	var paths []string
	for _, f := range UpdateFields {
		if u.isSet(f) || u.cleared(f) {
			paths = append(paths, string(f))
		}
	}
	return paths
}

func (u UpdateOrder) Validate() error {
	for _, c := range u.Clear {
		if _, err := ParseUpdateField(string(c)); err != nil {
			return err
		}
		if u.isSet(c) {
			return fmt.Errorf("%w: field %q is both updated and cleared", ErrInvalid, c)
		}
	}
	if len(u.Paths()) == 0 {
		return fmt.Errorf("%w: update has no fields", ErrInvalid)
	}
	return nil
}

// Apply returns o with the update applied for the given mask paths.
func (u UpdateOrder) Apply(o Order, paths []string) (Order, error) {
	for _, p := range paths {
		f, err := ParseUpdateField(p)
		if err != nil {
			return o, err
		}
		switch f {
		case UpdateFieldPrice:
			if u.Price == nil {
				return o, fmt.Errorf("%w: price cannot be cleared", ErrInvalid)
			}
			o.Price = *u.Price
		case UpdateFieldQuantity:
			if u.Quantity == nil {
				return o, fmt.Errorf("%w: quantity cannot be cleared", ErrInvalid)
			}
			o.Quantity = *u.Quantity
		case UpdateFieldStopPrice:
			o.StopPrice = u.StopPrice
		case UpdateFieldPeakPriceDelta:
			o.PeakPriceDelta = u.PeakPriceDelta
		case UpdateFieldDisplayQuantity:
			o.DisplayQuantity = u.DisplayQuantity
		case UpdateFieldExecutionOption:
			o.ExecutionOption = OrderExecutionOptionUnspecified
			if u.ExecutionOption != nil {
				o.ExecutionOption = *u.ExecutionOption
			}
		case UpdateFieldValidUntil:
			o.ValidUntil = u.ValidUntil
		case UpdateFieldPayload:
			o.Payload = u.Payload
		case UpdateFieldTag:
			o.Tag = ""
			if u.Tag != nil {
				o.Tag = *u.Tag
			}
		}
	}
	return o, nil
}
