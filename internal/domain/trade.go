package domain

import "time"

// PublicTrade is an anonymised trade executed on the market.
type PublicTrade struct {
	ID               int64
	BuyDeliveryArea  DeliveryArea
	SellDeliveryArea DeliveryArea
	DeliveryPeriod   DeliveryPeriod
	ExecutionTime    time.Time
	Price            Price
	Quantity         Energy
	State            TradeState
}
