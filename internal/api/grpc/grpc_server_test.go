package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/olyamironova/electricity-trading-client/internal/adapter/in_memory"
	"github.com/olyamironova/electricity-trading-client/internal/auth"
	"github.com/olyamironova/electricity-trading-client/internal/core"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

func startServer(t *testing.T, opts ...gogrpc.ServerOption) (pb.ElectricityTradingServiceClient, *core.Engine) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	eng := core.NewEngine(in_memory.NewMemoryRepo(), in_memory.NewCache())

	srv := gogrpc.NewServer(opts...)
	pb.RegisterElectricityTradingServiceServer(srv, NewGRPCServer(eng))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := gogrpc.NewClient("passthrough:///bufnet",
		gogrpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return pb.NewElectricityTradingServiceClient(conn), eng
}

func wireOrder(t *testing.T) *pb.Order {
	t.Helper()
	o, err := pb.OrderToProto(domain.Order{
		DeliveryArea: domain.DeliveryArea{Code: "10YDE-EON------1", CodeType: domain.EnergyMarketCodeTypeEuropeEIC},
		DeliveryPeriod: domain.DeliveryPeriod{
			Start:    time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour),
			Duration: domain.DeliveryDurationMinutes60,
		},
		Type:     domain.OrderTypeLimit,
		Side:     domain.MarketSideBuy,
		Price:    domain.Price{Amount: decimal.RequireFromString("10.5"), Currency: domain.CurrencyEUR},
		Quantity: domain.Energy{MWh: decimal.RequireFromString("1")},
	})
	require.NoError(t, err)
	return o
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalid), codes.InvalidArgument},
		{core.ErrInvalidPageToken, codes.InvalidArgument},
		{fmt.Errorf("x: %w", core.ErrOrderNotFound), codes.NotFound},
		{core.ErrNotOpen, codes.FailedPrecondition},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{context.Canceled, codes.Canceled},
		{errors.New("disk full"), codes.Internal},
		{status.Error(codes.Aborted, "x"), codes.Aborted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(toStatus(tt.err)), tt.err.Error())
	}
	assert.NoError(t, toStatus(nil))
}

// TestServer_OrderLifecycle drives create, update, get, list and cancel over the wire.
func TestServer_OrderLifecycle(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	created, err := client.CreateGridpoolOrder(ctx, &pb.CreateGridpoolOrderRequest{GridpoolId: 3, Order: wireOrder(t)})
	require.NoError(t, err)
	id := created.OrderDetail.OrderId
	assert.Equal(t, int32(domain.OrderStateActive), created.OrderDetail.StateDetail.State)

	price := domain.Price{Amount: decimal.RequireFromString("11"), Currency: domain.CurrencyEUR}
	u, mask, err := pb.UpdateOrderToProto(domain.UpdateOrder{Price: &price})
	require.NoError(t, err)
	updated, err := client.UpdateGridpoolOrder(ctx, &pb.UpdateGridpoolOrderRequest{
		GridpoolId: 3, OrderId: id, UpdateOrderFields: u, UpdateMask: mask,
	})
	require.NoError(t, err)
	assert.Equal(t, "11", updated.OrderDetail.Order.Price.Amount.Value)

	got, err := client.GetGridpoolOrder(ctx, &pb.GetGridpoolOrderRequest{GridpoolId: 3, OrderId: id})
	require.NoError(t, err)
	assert.Equal(t, id, got.OrderDetail.OrderId)

	list, err := client.ListGridpoolOrders(ctx, &pb.ListGridpoolOrdersRequest{GridpoolId: 3})
	require.NoError(t, err)
	require.Len(t, list.OrderDetails, 1)
	assert.Equal(t, int32(1), list.PaginationInfo.TotalItems)

	canceled, err := client.CancelGridpoolOrder(ctx, &pb.CancelGridpoolOrderRequest{GridpoolId: 3, OrderId: id})
	require.NoError(t, err)
	assert.Equal(t, int32(domain.OrderStateCanceled), canceled.OrderDetail.StateDetail.State)

	_, err = client.CancelGridpoolOrder(ctx, &pb.CancelGridpoolOrderRequest{GridpoolId: 3, OrderId: id})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	all, err := client.CancelAllGridpoolOrders(ctx, &pb.CancelAllGridpoolOrdersRequest{GridpoolId: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.GridpoolId)

	_, err = client.GetGridpoolOrder(ctx, &pb.GetGridpoolOrderRequest{GridpoolId: 4, OrderId: id})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.CreateGridpoolOrder(ctx, &pb.CreateGridpoolOrderRequest{GridpoolId: 3})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_OrderStreamFilters verifies the stream only carries matching orders.
func TestServer_OrderStreamFilters(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	canceledState := int32(domain.OrderStateCanceled)
	stream, err := client.ReceiveGridpoolOrdersStream(ctx, &pb.ReceiveGridpoolOrdersStreamRequest{
		GridpoolId: 1,
		Filter:     &pb.GridpoolOrderFilter{States: []int32{canceledState}},
	})
	require.NoError(t, err)
	// headers arrive once the server handler is running and subscribed
	_, err = stream.Header()
	require.NoError(t, err)

	created, err := client.CreateGridpoolOrder(ctx, &pb.CreateGridpoolOrderRequest{GridpoolId: 1, Order: wireOrder(t)})
	require.NoError(t, err)
	_, err = client.CancelGridpoolOrder(ctx, &pb.CancelGridpoolOrderRequest{GridpoolId: 1, OrderId: created.OrderDetail.OrderId})
	require.NoError(t, err)

	msg, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, created.OrderDetail.OrderId, msg.OrderDetail.OrderId)
	assert.Equal(t, canceledState, msg.OrderDetail.StateDetail.State)
}

func TestServer_PublicTrades(t *testing.T) {
	client, eng := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.ReceivePublicTradesStream(ctx, &pb.ReceivePublicTradesStreamRequest{})
	require.NoError(t, err)
	_, err = stream.Header()
	require.NoError(t, err)

	tr, err := eng.RecordPublicTrade(ctx, domain.PublicTrade{State: domain.TradeStateActive})
	require.NoError(t, err)

	msg, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, tr.ID, msg.PublicTrade.Id)

	list, err := client.ListPublicTrades(ctx, &pb.ListPublicTradesRequest{})
	require.NoError(t, err)
	require.Len(t, list.PublicTrades, 1)
}

// TestServer_APIKey verifies missing and unknown keys are rejected.
func TestServer_APIKey(t *testing.T) {
	client, _ := startServer(t, ServerOptions(logger.Nop(), []string{"k1"}, nil)...)
	ctx := context.Background()
	req := &pb.ListPublicTradesRequest{}

	_, err := client.ListPublicTrades(ctx, req)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = client.ListPublicTrades(metadata.AppendToOutgoingContext(ctx, auth.KeyMetadata, "nope"), req)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	var header metadata.MD
	_, err = client.ListPublicTrades(metadata.AppendToOutgoingContext(ctx, auth.KeyMetadata, "k1"), req, gogrpc.Header(&header))
	require.NoError(t, err)
	assert.NotEmpty(t, header.Get(auth.RequestIDMetadata))

	stream, err := client.ReceivePublicTradesStream(ctx, &pb.ReceivePublicTradesStreamRequest{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_RequestIDPropagated(t *testing.T) {
	client, _ := startServer(t, ServerOptions(logger.Nop(), nil, nil)...)
	ctx := metadata.AppendToOutgoingContext(context.Background(), auth.RequestIDMetadata, "req-1")

	var header metadata.MD
	_, err := client.ListPublicTrades(ctx, &pb.ListPublicTradesRequest{}, gogrpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"req-1"}, header.Get(auth.RequestIDMetadata))
}

// TestServer_Signature verifies signed calls pass and unsigned ones fail.
func TestServer_Signature(t *testing.T) {
	secret := []byte("s3cret")
	client, _ := startServer(t, ServerOptions(logger.Nop(), nil, auth.NewVerifier(secret, time.Minute))...)
	ctx := context.Background()

	_, err := client.ListPublicTrades(ctx, &pb.ListPublicTradesRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ts := auth.Timestamp(time.Now())
	sig := auth.Sign(secret, pb.ListPublicTradesMethod, ts, "nonce-1")
	signed := metadata.AppendToOutgoingContext(ctx,
		auth.TimestampMetadata, ts, auth.NonceMetadata, "nonce-1", auth.SignatureMetadata, sig)
	_, err = client.ListPublicTrades(signed, &pb.ListPublicTradesRequest{})
	require.NoError(t, err)
}
