package port

import (
	"context"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

//go:generate mockgen -source=sink.go -destination=../mock/sink_mock.go -package=mock

// TradeSink stores public trades. Saving a trade id twice is a no-op.
type TradeSink interface {
	SavePublicTrade(ctx context.Context, t *domain.PublicTrade) error
}
