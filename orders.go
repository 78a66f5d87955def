package electricitytrading

import (
	"context"
	"fmt"
	"iter"

	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

// CreateGridpoolOrder places order on behalf of the gridpool.
func (c *Client) CreateGridpoolOrder(ctx context.Context, gridpoolID int64, order Order) (OrderDetail, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return OrderDetail{}, err
	}
	if err := validateOrder(order, c.opts.now()); err != nil {
		return OrderDetail{}, err
	}
	wire, err := pb.OrderToProto(order)
	if err != nil {
		return OrderDetail{}, invalid("%v", err)
	}

	var resp *pb.CreateGridpoolOrderResponse
	err = c.call(ctx, pb.CreateGridpoolOrderMethod, false, func(ctx context.Context) (err error) {
		resp, err = c.stub.CreateGridpoolOrder(ctx, &pb.CreateGridpoolOrderRequest{GridpoolId: gridpoolID, Order: wire})
		return err
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return orderDetailFromWire(resp.OrderDetail)
}

// UpdateGridpoolOrder changes the fields set or cleared in update.
func (c *Client) UpdateGridpoolOrder(ctx context.Context, gridpoolID, orderID int64, update UpdateOrder) (OrderDetail, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return OrderDetail{}, err
	}
	if err := validateOrderID(orderID); err != nil {
		return OrderDetail{}, err
	}
	if err := validateUpdate(update, c.opts.now()); err != nil {
		return OrderDetail{}, err
	}
	fields, mask, err := pb.UpdateOrderToProto(update)
	if err != nil {
		return OrderDetail{}, invalid("%v", err)
	}

	var resp *pb.UpdateGridpoolOrderResponse
	err = c.call(ctx, pb.UpdateGridpoolOrderMethod, false, func(ctx context.Context) (err error) {
		resp, err = c.stub.UpdateGridpoolOrder(ctx, &pb.UpdateGridpoolOrderRequest{
			GridpoolId:        gridpoolID,
			OrderId:           orderID,
			UpdateOrderFields: fields,
			UpdateMask:        mask,
		})
		return err
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return orderDetailFromWire(resp.OrderDetail)
}

func (c *Client) CancelGridpoolOrder(ctx context.Context, gridpoolID, orderID int64) (OrderDetail, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return OrderDetail{}, err
	}
	if err := validateOrderID(orderID); err != nil {
		return OrderDetail{}, err
	}

	var resp *pb.CancelGridpoolOrderResponse
	err := c.call(ctx, pb.CancelGridpoolOrderMethod, false, func(ctx context.Context) (err error) {
		resp, err = c.stub.CancelGridpoolOrder(ctx, &pb.CancelGridpoolOrderRequest{GridpoolId: gridpoolID, OrderId: orderID})
		return err
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return orderDetailFromWire(resp.OrderDetail)
}

// CancelAllGridpoolOrders cancels every open order of the gridpool and
// returns the gridpool id confirmed by the server.
func (c *Client) CancelAllGridpoolOrders(ctx context.Context, gridpoolID int64) (int64, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return 0, err
	}

	var resp *pb.CancelAllGridpoolOrdersResponse
	err := c.call(ctx, pb.CancelAllGridpoolOrdersMethod, false, func(ctx context.Context) (err error) {
		resp, err = c.stub.CancelAllGridpoolOrders(ctx, &pb.CancelAllGridpoolOrdersRequest{GridpoolId: gridpoolID})
		return err
	})
	if err != nil {
		return 0, err
	}
	return resp.GridpoolId, nil
}

func (c *Client) GetGridpoolOrder(ctx context.Context, gridpoolID, orderID int64) (OrderDetail, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return OrderDetail{}, err
	}
	if err := validateOrderID(orderID); err != nil {
		return OrderDetail{}, err
	}

	var resp *pb.GetGridpoolOrderResponse
	err := c.call(ctx, pb.GetGridpoolOrderMethod, true, func(ctx context.Context) (err error) {
		resp, err = c.stub.GetGridpoolOrder(ctx, &pb.GetGridpoolOrderRequest{GridpoolId: gridpoolID, OrderId: orderID})
		return err
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return orderDetailFromWire(resp.OrderDetail)
}

// ListGridpoolOrdersPage returns one page of the gridpool's orders matching
// filter. Pass the returned NextPageToken to fetch the following page.
func (c *Client) ListGridpoolOrdersPage(ctx context.Context, gridpoolID int64, filter GridpoolOrderFilter, page PaginationParams) ([]OrderDetail, PaginationInfo, error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return nil, PaginationInfo{}, err
	}
	if err := validatePagination(page); err != nil {
		return nil, PaginationInfo{}, err
	}

	var resp *pb.ListGridpoolOrdersResponse
	err := c.call(ctx, pb.ListGridpoolOrdersMethod, true, func(ctx context.Context) (err error) {
		resp, err = c.stub.ListGridpoolOrders(ctx, &pb.ListGridpoolOrdersRequest{
			GridpoolId:       gridpoolID,
			Filter:           pb.GridpoolOrderFilterToProto(filter),
			PaginationParams: pb.PaginationParamsToProto(page),
		})
		return err
	})
	if err != nil {
		return nil, PaginationInfo{}, err
	}

	out := make([]OrderDetail, 0, len(resp.OrderDetails))
	for _, d := range resp.OrderDetails {
		od, err := orderDetailFromWire(d)
		if err != nil {
			return nil, PaginationInfo{}, err
		}
		out = append(out, od)
	}
	return out, pb.PaginationInfoFromProto(resp.PaginationInfo), nil
}

// ListGridpoolOrders walks every page starting at page. Iteration stops at
// the first error, which is yielded with a zero OrderDetail.
func (c *Client) ListGridpoolOrders(ctx context.Context, gridpoolID int64, filter GridpoolOrderFilter, page PaginationParams) iter.Seq2[OrderDetail, error] {
	return paginate(page, func(p PaginationParams) ([]OrderDetail, PaginationInfo, error) {
		return c.ListGridpoolOrdersPage(ctx, gridpoolID, filter, p)
	})
}

func paginate[T any](page PaginationParams, fetch func(PaginationParams) ([]T, PaginationInfo, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			items, info, err := fetch(page)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, it := range items {
				if !yield(it, nil) {
					return
				}
			}
			if !info.HasNext() || info.NextPageToken == page.PageToken {
				return
			}
			page.PageToken = info.NextPageToken
		}
	}
}

func orderDetailFromWire(d *pb.OrderDetail) (OrderDetail, error) {
	if d == nil {
		return OrderDetail{}, fmt.Errorf("%w: response without order detail", ErrInternal)
	}
	od, err := pb.OrderDetailFromProto(d)
	if err != nil {
		return OrderDetail{}, fmt.Errorf("%w: decode order detail: %v", ErrInternal, err)
	}
	return od, nil
}
