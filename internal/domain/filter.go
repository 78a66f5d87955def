package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const MaxPageSize = 1000

// GridpoolOrderFilter narrows a listing or stream of gridpool orders. Zero
// fields match everything.
type GridpoolOrderFilter struct {
	States         []OrderState
	Side           *MarketSide
	DeliveryPeriod *DeliveryPeriod
	DeliveryArea   *DeliveryArea
	Tag            string
}

func (f GridpoolOrderFilter) Matches(d OrderDetail) bool {
	if len(f.States) > 0 && !slices.Contains(f.States, d.StateDetail.State) {
		return false
	}
	if f.Side != nil && *f.Side != d.Order.Side {
		return false
	}
	if f.DeliveryPeriod != nil && !f.DeliveryPeriod.Equal(d.Order.DeliveryPeriod) {
		return false
	}
	if f.DeliveryArea != nil && *f.DeliveryArea != d.Order.DeliveryArea {
		return false
	}
	if f.Tag != "" && f.Tag != d.Order.Tag {
		return false
	}
	return true
}

// Key is a canonical representation of f; equal filters share a key.
func (f GridpoolOrderFilter) Key() string {
	var b strings.Builder
	b.WriteString("states=")
	b.WriteString(joinSorted(f.States))
	b.WriteString(";side=")
	if f.Side != nil {
		b.WriteString(f.Side.String())
	}
	b.WriteString(";period=")
	if f.DeliveryPeriod != nil {
		b.WriteString(f.DeliveryPeriod.String())
	}
	b.WriteString(";area=")
	if f.DeliveryArea != nil {
		b.WriteString(f.DeliveryArea.String())
	}
	b.WriteString(";tag=")
	b.WriteString(strconv.Quote(f.Tag))
	return b.String()
}

// PublicTradeFilter narrows a listing or stream of public trades.
type PublicTradeFilter struct {
	States           []TradeState
	DeliveryPeriod   *DeliveryPeriod
	BuyDeliveryArea  *DeliveryArea
	SellDeliveryArea *DeliveryArea
}

func (f PublicTradeFilter) Matches(t PublicTrade) bool {
	if len(f.States) > 0 && !slices.Contains(f.States, t.State) {
		return false
	}
	if f.DeliveryPeriod != nil && !f.DeliveryPeriod.Equal(t.DeliveryPeriod) {
		return false
	}
	if f.BuyDeliveryArea != nil && *f.BuyDeliveryArea != t.BuyDeliveryArea {
		return false
	}
	if f.SellDeliveryArea != nil && *f.SellDeliveryArea != t.SellDeliveryArea {
		return false
	}
	return true
}

func (f PublicTradeFilter) Key() string {
	var b strings.Builder
	b.WriteString("states=")
	b.WriteString(joinSorted(f.States))
	b.WriteString(";period=")
	if f.DeliveryPeriod != nil {
		b.WriteString(f.DeliveryPeriod.String())
	}
	b.WriteString(";buy=")
	if f.BuyDeliveryArea != nil {
		b.WriteString(f.BuyDeliveryArea.String())
	}
	b.WriteString(";sell=")
	if f.SellDeliveryArea != nil {
		b.WriteString(f.SellDeliveryArea.String())
	}
	return b.String()
}

func joinSorted[T ~int32](vs []T) string {
	s := slices.Clone(vs)
	slices.Sort(s)
	s = slices.Compact(s)
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

// PaginationParams selects a page of a listing. A zero PageSize lets the
// server choose.
type PaginationParams struct {
	PageSize  int32
	PageToken string
}

func (p PaginationParams) Validate() error {
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size %d out of range [0, %d]", ErrInvalid, p.PageSize, MaxPageSize)
	}
	return nil
}

// PaginationInfo describes the page returned by a listing.
type PaginationInfo struct {
	TotalItems    int32
	PageSize      int32
	NextPageToken string
}

// HasNext reports whether another page can be requested.
func (p PaginationInfo) HasNext() bool { return p.NextPageToken != "" }
