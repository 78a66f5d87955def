package domain

import "github.com/shopspring/decimal"

// Price is an amount of money per MWh in a given currency.
type Price struct {
	Amount   decimal.Decimal
	Currency Currency
}

func NewPrice(amount string, currency Currency) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, err
	}
	return Price{Amount: d, Currency: currency}, nil
}

func (p Price) Equal(o Price) bool {
	return p.Currency == o.Currency && p.Amount.Equal(o.Amount)
}

func (p Price) String() string { return p.Amount.String() + " " + p.Currency.String() }

// Energy is a quantity of energy in MWh.
type Energy struct {
	MWh decimal.Decimal
}

func NewEnergy(mwh string) (Energy, error) {
	d, err := decimal.NewFromString(mwh)
	if err != nil {
		return Energy{}, err
	}
	return Energy{MWh: d}, nil
}

func (e Energy) Equal(o Energy) bool { return e.MWh.Equal(o.MWh) }

func (e Energy) String() string { return e.MWh.String() + " MWh" }
