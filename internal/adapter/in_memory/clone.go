package in_memory

import (
	"maps"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

func cloneDetail(d *domain.OrderDetail) *domain.OrderDetail {
	c := *d
	c.Order.Payload = maps.Clone(d.Order.Payload)
	return &c
}
