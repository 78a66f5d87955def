package electricitytrading

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

const (
	pricePrecision    = 2
	quantityPrecision = 1
)

var (
	minPrice    = decimal.NewFromInt(-9999)
	maxPrice    = decimal.NewFromInt(9999)
	minQuantity = decimal.RequireFromString("0.1")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

func hasAtMostDecimals(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

func validatePrice(p Price) error {
	if p.Amount.LessThan(minPrice) || p.Amount.GreaterThan(maxPrice) {
		return invalid("price %s outside [%s, %s]", p.Amount, minPrice, maxPrice)
	}
	if !hasAtMostDecimals(p.Amount, pricePrecision) {
		return invalid("price %s has more than %d decimal places", p.Amount, pricePrecision)
	}
	if p.Currency == domain.CurrencyUnspecified {
		return invalid("price currency is unspecified")
	}
	return nil
}

func validateQuantity(e Energy) error {
	if e.MWh.LessThan(minQuantity) {
		return invalid("quantity %s below the minimum of %s MWh", e.MWh, minQuantity)
	}
	if !hasAtMostDecimals(e.MWh, quantityPrecision) {
		return invalid("quantity %s has more than %d decimal place", e.MWh, quantityPrecision)
	}
	return nil
}

func validateExecutionOption(o OrderExecutionOption) error {
	switch o {
	case domain.OrderExecutionOptionUnspecified, domain.OrderExecutionOptionNone,
		domain.OrderExecutionOptionAON, domain.OrderExecutionOptionFOK, domain.OrderExecutionOptionIOC:
		return nil
	}
	return invalid("unknown execution option %d", int32(o))
}

func validateValidUntil(t *time.Time, now time.Time) error {
	if t != nil && !t.After(now) {
		return invalid("valid until %s is not in the future", t.UTC().Format(time.RFC3339))
	}
	return nil
}

func validateGridpoolID(id int64) error {
	if id <= 0 {
		return invalid("gridpool id %d must be positive", id)
	}
	return nil
}

func validateOrderID(id int64) error {
	if id <= 0 {
		return invalid("order id %d must be positive", id)
	}
	return nil
}

func validateOrder(o Order, now time.Time) error {
	if err := o.DeliveryArea.Validate(); err != nil {
		return invalid("%v", err)
	}
	if err := o.DeliveryPeriod.Validate(); err != nil {
		return invalid("%v", err)
	}
	if !o.DeliveryPeriod.Start.After(now) {
		return invalid("delivery period start %s is not in the future", o.DeliveryPeriod.Start.UTC().Format(time.RFC3339))
	}
	switch o.Type {
	case domain.OrderTypeLimit:
	case domain.OrderTypeUnspecified:
		return invalid("order type is unspecified")
	default:
		return unsupported("order type %s", o.Type)
	}
	if o.Side != domain.MarketSideBuy && o.Side != domain.MarketSideSell {
		return invalid("market side %s", o.Side)
	}
	if err := validatePrice(o.Price); err != nil {
		return err
	}
	if err := validateQuantity(o.Quantity); err != nil {
		return err
	}
	if o.StopPrice != nil {
		return unsupported("stop price")
	}
	if o.PeakPriceDelta != nil {
		return unsupported("peak price delta")
	}
	if o.DisplayQuantity != nil {
		return unsupported("display quantity")
	}
	if err := validateExecutionOption(o.ExecutionOption); err != nil {
		return err
	}
	return validateValidUntil(o.ValidUntil, now)
}

func validateUpdate(u UpdateOrder, now time.Time) error {
	if err := u.Validate(); err != nil {
		return invalid("%v", err)
	}
	for _, c := range u.Clear {
		if c == UpdateFieldPrice || c == UpdateFieldQuantity {
			return invalid("%s cannot be cleared", c)
		}
	}
	if u.Price != nil {
		if err := validatePrice(*u.Price); err != nil {
			return err
		}
	}
	if u.Quantity != nil {
		if err := validateQuantity(*u.Quantity); err != nil {
			return err
		}
	}
	if u.StopPrice != nil {
		return unsupported("stop price")
	}
	if u.PeakPriceDelta != nil {
		return unsupported("peak price delta")
	}
	if u.DisplayQuantity != nil {
		return unsupported("display quantity")
	}
	if u.ExecutionOption != nil {
		if err := validateExecutionOption(*u.ExecutionOption); err != nil {
			return err
		}
	}
	return validateValidUntil(u.ValidUntil, now)
}

func validatePagination(p PaginationParams) error {
	if err := p.Validate(); err != nil {
		return invalid("%v", err)
	}
	return nil
}
