package grpc

import (
	"context"
	"errors"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/olyamironova/electricity-trading-client/internal/core"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

type GRPCServer struct {
	pb.UnimplementedElectricityTradingServiceServer
	Eng *core.Engine
}

func NewGRPCServer(eng *core.Engine) *GRPCServer {
	return &GRPCServer{Eng: eng}
}

// toStatus maps engine and domain errors to gRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrInvalid), errors.Is(err, core.ErrInvalidPageToken):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, core.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, core.ErrNotOpen):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Errorf(codes.Internal, "internal error: %v", err)
}

func orderDetailResponse(d domain.OrderDetail) (*pb.OrderDetail, error) {
	out, err := pb.OrderDetailToProto(d)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode order %d: %v", d.OrderID, err)
	}
	return out, nil
}

func (s *GRPCServer) CreateGridpoolOrder(ctx context.Context, req *pb.CreateGridpoolOrderRequest) (*pb.CreateGridpoolOrderResponse, error) {
	if req.Order == nil {
		return nil, status.Error(codes.InvalidArgument, "order is required")
	}
	o, err := pb.OrderFromProto(req.Order)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid order: %v", err)
	}
	d, err := s.Eng.CreateOrder(ctx, req.GridpoolId, o)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := orderDetailResponse(d)
	if err != nil {
		return nil, err
	}
	return &pb.CreateGridpoolOrderResponse{OrderDetail: out}, nil
}

func (s *GRPCServer) UpdateGridpoolOrder(ctx context.Context, req *pb.UpdateGridpoolOrderRequest) (*pb.UpdateGridpoolOrderResponse, error) {
	u, paths, err := pb.UpdateOrderFromProto(req.UpdateOrderFields, req.UpdateMask)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid update: %v", err)
	}
	d, err := s.Eng.UpdateOrder(ctx, req.GridpoolId, req.OrderId, u, paths)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := orderDetailResponse(d)
	if err != nil {
		return nil, err
	}
	return &pb.UpdateGridpoolOrderResponse{OrderDetail: out}, nil
}

func (s *GRPCServer) CancelGridpoolOrder(ctx context.Context, req *pb.CancelGridpoolOrderRequest) (*pb.CancelGridpoolOrderResponse, error) {
	d, err := s.Eng.CancelOrder(ctx, req.GridpoolId, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := orderDetailResponse(d)
	if err != nil {
		return nil, err
	}
	return &pb.CancelGridpoolOrderResponse{OrderDetail: out}, nil
}

func (s *GRPCServer) CancelAllGridpoolOrders(ctx context.Context, req *pb.CancelAllGridpoolOrdersRequest) (*pb.CancelAllGridpoolOrdersResponse, error) {
	id, err := s.Eng.CancelAllOrders(ctx, req.GridpoolId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CancelAllGridpoolOrdersResponse{GridpoolId: id}, nil
}

func (s *GRPCServer) GetGridpoolOrder(ctx context.Context, req *pb.GetGridpoolOrderRequest) (*pb.GetGridpoolOrderResponse, error) {
	d, err := s.Eng.GetOrder(ctx, req.GridpoolId, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := orderDetailResponse(d)
	if err != nil {
		return nil, err
	}
	return &pb.GetGridpoolOrderResponse{OrderDetail: out}, nil
}

func (s *GRPCServer) ListGridpoolOrders(ctx context.Context, req *pb.ListGridpoolOrdersRequest) (*pb.ListGridpoolOrdersResponse, error) {
	page, info, err := s.Eng.ListOrders(ctx, req.GridpoolId,
		pb.GridpoolOrderFilterFromProto(req.Filter), pb.PaginationParamsFromProto(req.PaginationParams))
	if err != nil {
		return nil, toStatus(err)
	}
	details := make([]*pb.OrderDetail, 0, len(page))
	for _, d := range page {
		out, err := orderDetailResponse(d)
		if err != nil {
			return nil, err
		}
		details = append(details, out)
	}
	return &pb.ListGridpoolOrdersResponse{
		OrderDetails:   details,
		PaginationInfo: pb.PaginationInfoToProto(info),
	}, nil
}

func (s *GRPCServer) ReceiveGridpoolOrdersStream(req *pb.ReceiveGridpoolOrdersStreamRequest, stream gogrpc.ServerStreamingServer[pb.ReceiveGridpoolOrdersStreamResponse]) error {
	if req.GridpoolId <= 0 {
		return status.Errorf(codes.InvalidArgument, "gridpool id %d must be positive", req.GridpoolId)
	}
	filter := pb.GridpoolOrderFilterFromProto(req.Filter)
	ctx := stream.Context()
	log := logger.FromContext(ctx)

	ch, unsubscribe := s.Eng.SubscribeOrders(req.GridpoolId)
	defer unsubscribe()
	// headers tell the caller the subscription is live
	if err := stream.SendHeader(metadata.MD{}); err != nil {
		return err
	}
	log.Debug().Int64("gridpool_id", req.GridpoolId).Msg("order stream opened")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("gridpool_id", req.GridpoolId).Msg("order stream closed by client")
			return nil
		case d, ok := <-ch:
			if !ok {
				return status.Error(codes.Unavailable, "order stream closed")
			}
			if !filter.Matches(d) {
				continue
			}
			out, err := orderDetailResponse(d)
			if err != nil {
				return err
			}
			if err := stream.Send(&pb.ReceiveGridpoolOrdersStreamResponse{OrderDetail: out}); err != nil {
				return err
			}
		}
	}
}

func (s *GRPCServer) ListPublicTrades(ctx context.Context, req *pb.ListPublicTradesRequest) (*pb.ListPublicTradesResponse, error) {
	page, info, err := s.Eng.ListPublicTrades(ctx,
		pb.PublicTradeFilterFromProto(req.Filter), pb.PaginationParamsFromProto(req.PaginationParams))
	if err != nil {
		return nil, toStatus(err)
	}
	trades := make([]*pb.PublicTrade, 0, len(page))
	for _, t := range page {
		trades = append(trades, pb.PublicTradeToProto(t))
	}
	return &pb.ListPublicTradesResponse{
		PublicTrades:   trades,
		PaginationInfo: pb.PaginationInfoToProto(info),
	}, nil
}

func (s *GRPCServer) ReceivePublicTradesStream(req *pb.ReceivePublicTradesStreamRequest, stream gogrpc.ServerStreamingServer[pb.ReceivePublicTradesStreamResponse]) error {
	filter := pb.PublicTradeFilterFromProto(req.Filter)
	ctx := stream.Context()

	ch, unsubscribe := s.Eng.SubscribePublicTrades()
	defer unsubscribe()
	if err := stream.SendHeader(metadata.MD{}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case t, ok := <-ch:
			if !ok {
				return status.Error(codes.Unavailable, "trade stream closed")
			}
			if !filter.Matches(t) {
				continue
			}
			if err := stream.Send(&pb.ReceivePublicTradesStreamResponse{PublicTrade: pb.PublicTradeToProto(t)}); err != nil {
				return err
			}
		}
	}
}
