package electricitytrading

import (
	"context"
	"fmt"
	"iter"

	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

// ListPublicTradesPage returns one page of public trades matching filter.
func (c *Client) ListPublicTradesPage(ctx context.Context, filter PublicTradeFilter, page PaginationParams) ([]PublicTrade, PaginationInfo, error) {
	if err := validatePagination(page); err != nil {
		return nil, PaginationInfo{}, err
	}

	var resp *pb.ListPublicTradesResponse
	err := c.call(ctx, pb.ListPublicTradesMethod, true, func(ctx context.Context) (err error) {
		resp, err = c.stub.ListPublicTrades(ctx, &pb.ListPublicTradesRequest{
			Filter:           pb.PublicTradeFilterToProto(filter),
			PaginationParams: pb.PaginationParamsToProto(page),
		})
		return err
	})
	if err != nil {
		return nil, PaginationInfo{}, err
	}

	out := make([]PublicTrade, 0, len(resp.PublicTrades))
	for _, t := range resp.PublicTrades {
		pt, err := publicTradeFromWire(t)
		if err != nil {
			return nil, PaginationInfo{}, err
		}
		out = append(out, pt)
	}
	return out, pb.PaginationInfoFromProto(resp.PaginationInfo), nil
}

// ListPublicTrades walks every page of public trades starting at page.
func (c *Client) ListPublicTrades(ctx context.Context, filter PublicTradeFilter, page PaginationParams) iter.Seq2[PublicTrade, error] {
	return paginate(page, func(p PaginationParams) ([]PublicTrade, PaginationInfo, error) {
		return c.ListPublicTradesPage(ctx, filter, p)
	})
}

func publicTradeFromWire(t *pb.PublicTrade) (PublicTrade, error) {
	if t == nil {
		return PublicTrade{}, fmt.Errorf("%w: response without public trade", ErrInternal)
	}
	pt, err := pb.PublicTradeFromProto(t)
	if err != nil {
		return PublicTrade{}, fmt.Errorf("%w: decode public trade: %v", ErrInternal, err)
	}
	return pt, nil
}
