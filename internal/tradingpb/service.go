package tradingpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "frequenz.api.electricity_trading.v1.ElectricityTradingService"

const (
	CreateGridpoolOrderMethod         = "/" + ServiceName + "/CreateGridpoolOrder"
	UpdateGridpoolOrderMethod         = "/" + ServiceName + "/UpdateGridpoolOrder"
	CancelGridpoolOrderMethod         = "/" + ServiceName + "/CancelGridpoolOrder"
	CancelAllGridpoolOrdersMethod     = "/" + ServiceName + "/CancelAllGridpoolOrders"
	GetGridpoolOrderMethod            = "/" + ServiceName + "/GetGridpoolOrder"
	ListGridpoolOrdersMethod          = "/" + ServiceName + "/ListGridpoolOrders"
	ReceiveGridpoolOrdersStreamMethod = "/" + ServiceName + "/ReceiveGridpoolOrdersStream"
	ListPublicTradesMethod            = "/" + ServiceName + "/ListPublicTrades"
	ReceivePublicTradesStreamMethod   = "/" + ServiceName + "/ReceivePublicTradesStream"
)

// ElectricityTradingServiceClient is the client API of the trading service.
type ElectricityTradingServiceClient interface {
	CreateGridpoolOrder(ctx context.Context, in *CreateGridpoolOrderRequest, opts ...grpc.CallOption) (*CreateGridpoolOrderResponse, error)
	UpdateGridpoolOrder(ctx context.Context, in *UpdateGridpoolOrderRequest, opts ...grpc.CallOption) (*UpdateGridpoolOrderResponse, error)
	CancelGridpoolOrder(ctx context.Context, in *CancelGridpoolOrderRequest, opts ...grpc.CallOption) (*CancelGridpoolOrderResponse, error)
	CancelAllGridpoolOrders(ctx context.Context, in *CancelAllGridpoolOrdersRequest, opts ...grpc.CallOption) (*CancelAllGridpoolOrdersResponse, error)
	GetGridpoolOrder(ctx context.Context, in *GetGridpoolOrderRequest, opts ...grpc.CallOption) (*GetGridpoolOrderResponse, error)
	ListGridpoolOrders(ctx context.Context, in *ListGridpoolOrdersRequest, opts ...grpc.CallOption) (*ListGridpoolOrdersResponse, error)
	ReceiveGridpoolOrdersStream(ctx context.Context, in *ReceiveGridpoolOrdersStreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ReceiveGridpoolOrdersStreamResponse], error)
	ListPublicTrades(ctx context.Context, in *ListPublicTradesRequest, opts ...grpc.CallOption) (*ListPublicTradesResponse, error)
	ReceivePublicTradesStream(ctx context.Context, in *ReceivePublicTradesStreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ReceivePublicTradesStreamResponse], error)
}

type electricityTradingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewElectricityTradingServiceClient returns a client stub that encodes every
// call with the JSON codec.
func NewElectricityTradingServiceClient(cc grpc.ClientConnInterface) ElectricityTradingServiceClient {
	return &electricityTradingServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *electricityTradingServiceClient) CreateGridpoolOrder(ctx context.Context, in *CreateGridpoolOrderRequest, opts ...grpc.CallOption) (*CreateGridpoolOrderResponse, error) {
	out := new(CreateGridpoolOrderResponse)
	if err := c.cc.Invoke(ctx, CreateGridpoolOrderMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) UpdateGridpoolOrder(ctx context.Context, in *UpdateGridpoolOrderRequest, opts ...grpc.CallOption) (*UpdateGridpoolOrderResponse, error) {
	out := new(UpdateGridpoolOrderResponse)
	if err := c.cc.Invoke(ctx, UpdateGridpoolOrderMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) CancelGridpoolOrder(ctx context.Context, in *CancelGridpoolOrderRequest, opts ...grpc.CallOption) (*CancelGridpoolOrderResponse, error) {
	out := new(CancelGridpoolOrderResponse)
	if err := c.cc.Invoke(ctx, CancelGridpoolOrderMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) CancelAllGridpoolOrders(ctx context.Context, in *CancelAllGridpoolOrdersRequest, opts ...grpc.CallOption) (*CancelAllGridpoolOrdersResponse, error) {
	out := new(CancelAllGridpoolOrdersResponse)
	if err := c.cc.Invoke(ctx, CancelAllGridpoolOrdersMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) GetGridpoolOrder(ctx context.Context, in *GetGridpoolOrderRequest, opts ...grpc.CallOption) (*GetGridpoolOrderResponse, error) {
	out := new(GetGridpoolOrderResponse)
	if err := c.cc.Invoke(ctx, GetGridpoolOrderMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) ListGridpoolOrders(ctx context.Context, in *ListGridpoolOrdersRequest, opts ...grpc.CallOption) (*ListGridpoolOrdersResponse, error) {
	out := new(ListGridpoolOrdersResponse)
	if err := c.cc.Invoke(ctx, ListGridpoolOrdersMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) ReceiveGridpoolOrdersStream(ctx context.Context, in *ReceiveGridpoolOrdersStreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ReceiveGridpoolOrdersStreamResponse], error) {
	stream, err := c.cc.NewStream(ctx, &ElectricityTradingService_ServiceDesc.Streams[0], ReceiveGridpoolOrdersStreamMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ReceiveGridpoolOrdersStreamRequest, ReceiveGridpoolOrdersStreamResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *electricityTradingServiceClient) ListPublicTrades(ctx context.Context, in *ListPublicTradesRequest, opts ...grpc.CallOption) (*ListPublicTradesResponse, error) {
	out := new(ListPublicTradesResponse)
	if err := c.cc.Invoke(ctx, ListPublicTradesMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electricityTradingServiceClient) ReceivePublicTradesStream(ctx context.Context, in *ReceivePublicTradesStreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ReceivePublicTradesStreamResponse], error) {
	stream, err := c.cc.NewStream(ctx, &ElectricityTradingService_ServiceDesc.Streams[1], ReceivePublicTradesStreamMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ReceivePublicTradesStreamRequest, ReceivePublicTradesStreamResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ElectricityTradingServiceServer is the server API of the trading service.
// Implementations must embed UnimplementedElectricityTradingServiceServer.
type ElectricityTradingServiceServer interface {
	CreateGridpoolOrder(context.Context, *CreateGridpoolOrderRequest) (*CreateGridpoolOrderResponse, error)
	UpdateGridpoolOrder(context.Context, *UpdateGridpoolOrderRequest) (*UpdateGridpoolOrderResponse, error)
	CancelGridpoolOrder(context.Context, *CancelGridpoolOrderRequest) (*CancelGridpoolOrderResponse, error)
	CancelAllGridpoolOrders(context.Context, *CancelAllGridpoolOrdersRequest) (*CancelAllGridpoolOrdersResponse, error)
	GetGridpoolOrder(context.Context, *GetGridpoolOrderRequest) (*GetGridpoolOrderResponse, error)
	ListGridpoolOrders(context.Context, *ListGridpoolOrdersRequest) (*ListGridpoolOrdersResponse, error)
	ReceiveGridpoolOrdersStream(*ReceiveGridpoolOrdersStreamRequest, grpc.ServerStreamingServer[ReceiveGridpoolOrdersStreamResponse]) error
	ListPublicTrades(context.Context, *ListPublicTradesRequest) (*ListPublicTradesResponse, error)
	ReceivePublicTradesStream(*ReceivePublicTradesStreamRequest, grpc.ServerStreamingServer[ReceivePublicTradesStreamResponse]) error
	mustEmbedUnimplementedElectricityTradingServiceServer()
}

type UnimplementedElectricityTradingServiceServer struct{}

func (UnimplementedElectricityTradingServiceServer) CreateGridpoolOrder(context.Context, *CreateGridpoolOrderRequest) (*CreateGridpoolOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateGridpoolOrder not implemented")
}
func (UnimplementedElectricityTradingServiceServer) UpdateGridpoolOrder(context.Context, *UpdateGridpoolOrderRequest) (*UpdateGridpoolOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateGridpoolOrder not implemented")
}
func (UnimplementedElectricityTradingServiceServer) CancelGridpoolOrder(context.Context, *CancelGridpoolOrderRequest) (*CancelGridpoolOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelGridpoolOrder not implemented")
}
func (UnimplementedElectricityTradingServiceServer) CancelAllGridpoolOrders(context.Context, *CancelAllGridpoolOrdersRequest) (*CancelAllGridpoolOrdersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelAllGridpoolOrders not implemented")
}
func (UnimplementedElectricityTradingServiceServer) GetGridpoolOrder(context.Context, *GetGridpoolOrderRequest) (*GetGridpoolOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGridpoolOrder not implemented")
}
func (UnimplementedElectricityTradingServiceServer) ListGridpoolOrders(context.Context, *ListGridpoolOrdersRequest) (*ListGridpoolOrdersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListGridpoolOrders not implemented")
}
func (UnimplementedElectricityTradingServiceServer) ReceiveGridpoolOrdersStream(*ReceiveGridpoolOrdersStreamRequest, grpc.ServerStreamingServer[ReceiveGridpoolOrdersStreamResponse]) error {
	return status.Errorf(codes.Unimplemented, "method ReceiveGridpoolOrdersStream not implemented")
}
func (UnimplementedElectricityTradingServiceServer) ListPublicTrades(context.Context, *ListPublicTradesRequest) (*ListPublicTradesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPublicTrades not implemented")
}
func (UnimplementedElectricityTradingServiceServer) ReceivePublicTradesStream(*ReceivePublicTradesStreamRequest, grpc.ServerStreamingServer[ReceivePublicTradesStreamResponse]) error {
	return status.Errorf(codes.Unimplemented, "method ReceivePublicTradesStream not implemented")
}
func (UnimplementedElectricityTradingServiceServer) mustEmbedUnimplementedElectricityTradingServiceServer() {
}

func RegisterElectricityTradingServiceServer(s grpc.ServiceRegistrar, srv ElectricityTradingServiceServer) {
	s.RegisterService(&ElectricityTradingService_ServiceDesc, srv)
}

func unaryHandler[Req any](method string, call func(srv any, ctx context.Context, in *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _ReceiveGridpoolOrdersStream_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ReceiveGridpoolOrdersStreamRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ElectricityTradingServiceServer).ReceiveGridpoolOrdersStream(m,
		&grpc.GenericServerStream[ReceiveGridpoolOrdersStreamRequest, ReceiveGridpoolOrdersStreamResponse]{ServerStream: stream})
}

func _ReceivePublicTradesStream_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ReceivePublicTradesStreamRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ElectricityTradingServiceServer).ReceivePublicTradesStream(m,
		&grpc.GenericServerStream[ReceivePublicTradesStreamRequest, ReceivePublicTradesStreamResponse]{ServerStream: stream})
}

func server(srv any) ElectricityTradingServiceServer { return srv.(ElectricityTradingServiceServer) }

// ElectricityTradingService_ServiceDesc is the grpc.ServiceDesc of the
// trading service.
var ElectricityTradingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ElectricityTradingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateGridpoolOrder",
			Handler: unaryHandler(CreateGridpoolOrderMethod, func(srv any, ctx context.Context, in *CreateGridpoolOrderRequest) (any, error) {
				return server(srv).CreateGridpoolOrder(ctx, in)
			}),
		},
		{
			MethodName: "UpdateGridpoolOrder",
			Handler: unaryHandler(UpdateGridpoolOrderMethod, func(srv any, ctx context.Context, in *UpdateGridpoolOrderRequest) (any, error) {
				return server(srv).UpdateGridpoolOrder(ctx, in)
			}),
		},
		{
			MethodName: "CancelGridpoolOrder",
			Handler: unaryHandler(CancelGridpoolOrderMethod, func(srv any, ctx context.Context, in *CancelGridpoolOrderRequest) (any, error) {
				return server(srv).CancelGridpoolOrder(ctx, in)
			}),
		},
		{
			MethodName: "CancelAllGridpoolOrders",
			Handler: unaryHandler(CancelAllGridpoolOrdersMethod, func(srv any, ctx context.Context, in *CancelAllGridpoolOrdersRequest) (any, error) {
				return server(srv).CancelAllGridpoolOrders(ctx, in)
			}),
		},
		{
			MethodName: "GetGridpoolOrder",
			Handler: unaryHandler(GetGridpoolOrderMethod, func(srv any, ctx context.Context, in *GetGridpoolOrderRequest) (any, error) {
				return server(srv).GetGridpoolOrder(ctx, in)
			}),
		},
		{
			MethodName: "ListGridpoolOrders",
			Handler: unaryHandler(ListGridpoolOrdersMethod, func(srv any, ctx context.Context, in *ListGridpoolOrdersRequest) (any, error) {
				return server(srv).ListGridpoolOrders(ctx, in)
			}),
		},
		{
			MethodName: "ListPublicTrades",
			Handler: unaryHandler(ListPublicTradesMethod, func(srv any, ctx context.Context, in *ListPublicTradesRequest) (any, error) {
				return server(srv).ListPublicTrades(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ReceiveGridpoolOrdersStream",
			Handler:       _ReceiveGridpoolOrdersStream_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "ReceivePublicTradesStream",
			Handler:       _ReceivePublicTradesStream_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "frequenz/api/electricity_trading/v1/electricity_trading.proto",
}
