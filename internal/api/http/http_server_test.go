package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	"github.com/olyamironova/electricity-trading-client/internal/adapter/in_memory"
	"github.com/olyamironova/electricity-trading-client/internal/api/dto"
	grpcapi "github.com/olyamironova/electricity-trading-client/internal/api/grpc"
	"github.com/olyamironova/electricity-trading-client/internal/core"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/middleware"
	"github.com/olyamironova/electricity-trading-client/internal/mock"
	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

func init() { gin.SetMode(gin.TestMode) }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, "tester")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func detail() domain.OrderDetail {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	return domain.OrderDetail{
		OrderID: 11,
		Order: domain.Order{
			DeliveryArea:   domain.DeliveryArea{Code: "10YDE-EON------1", CodeType: domain.EnergyMarketCodeTypeEuropeEIC},
			DeliveryPeriod: domain.DeliveryPeriod{Start: start, Duration: domain.DeliveryDurationMinutes15},
			Type:           domain.OrderTypeLimit,
			Side:           domain.MarketSideBuy,
			Price:          domain.Price{Amount: decimal.RequireFromString("20.5"), Currency: domain.CurrencyEUR},
			Quantity:       domain.Energy{MWh: decimal.RequireFromString("3")},
		},
		StateDetail:  domain.StateDetail{State: domain.OrderStateActive, StateReason: domain.StateReasonAdd, MarketActor: domain.MarketActorUser},
		OpenQuantity: domain.Energy{MWh: decimal.RequireFromString("3")},
	}
}

const orderBody = `{
	"delivery_area": {"code": "10YDE-EON------1", "code_type": "EUROPE_EIC"},
	"delivery_period": {"start": "2030-01-01T10:00:00Z", "duration": "MINUTES_15"},
	"type": "LIMIT",
	"side": "buy",
	"price": {"amount": "20.5", "currency": "EUR"},
	"quantity_mwh": "3"
}`

// TestHTTPServer_CreateOrder verifies the JSON body reaches the client as a domain order.
func TestHTTPServer_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockTradingAPI(ctrl)
	h := NewHTTPServer(api, logger.Nop(), nil).Router()

	api.EXPECT().CreateGridpoolOrder(gomock.Any(), int64(5), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, o electricitytrading.Order) (electricitytrading.OrderDetail, error) {
			assert.Equal(t, domain.MarketSideBuy, o.Side)
			assert.Equal(t, domain.DeliveryDurationMinutes15, o.DeliveryPeriod.Duration)
			assert.True(t, o.Price.Amount.Equal(decimal.RequireFromString("20.5")))
			return detail(), nil
		})

	w := do(t, h, http.MethodPost, "/v1/gridpools/5/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got dto.OrderDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(11), got.OrderID)
	assert.Equal(t, "ACTIVE", got.State)
	assert.Equal(t, "EUR", got.Order.Price.Currency)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestHTTPServer_BadRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockTradingAPI(ctrl)
	h := NewHTTPServer(api, logger.Nop(), nil).Router()

	tests := []struct {
		name, method, path, body string
	}{
		{"gridpool id", http.MethodGet, "/v1/gridpools/abc/orders/1", ""},
		{"order id", http.MethodGet, "/v1/gridpools/1/orders/0", ""},
		{"malformed json", http.MethodPost, "/v1/gridpools/1/orders", "{"},
		{"unknown side", http.MethodPost, "/v1/gridpools/1/orders", strings.Replace(orderBody, `"buy"`, `"hold"`, 1)},
		{"unknown state filter", http.MethodGet, "/v1/gridpools/1/orders?state=SLEEPING", ""},
		{"period without duration", http.MethodGet, "/v1/public-trades?delivery_start=2030-01-01T10:00:00Z", ""},
		{"unknown clear field", http.MethodPatch, "/v1/gridpools/1/orders/2", `{"clear": ["colour"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestHTTPServer_ErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{electricitytrading.ErrNotFound, http.StatusNotFound},
		{electricitytrading.ErrInvalidParameter, http.StatusBadRequest},
		{electricitytrading.ErrUnsupported, http.StatusUnprocessableEntity},
		{electricitytrading.ErrFailedPrecondition, http.StatusConflict},
		{electricitytrading.ErrUnavailable, http.StatusServiceUnavailable},
		{electricitytrading.ErrDeadlineExceeded, http.StatusGatewayTimeout},
		{electricitytrading.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		ctrl := gomock.NewController(t)
		api := mock.NewMockTradingAPI(ctrl)
		h := NewHTTPServer(api, logger.Nop(), nil).Router()
		api.EXPECT().GetGridpoolOrder(gomock.Any(), int64(1), int64(2)).Return(electricitytrading.OrderDetail{}, tt.err)

		w := do(t, h, http.MethodGet, "/v1/gridpools/1/orders/2", "")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), tt.err.Error())
	}
}

// TestStatusFromError_SeveralSentinels verifies an error wrapping more than
// one sentinel always gets the same status.
func TestStatusFromError_SeveralSentinels(t *testing.T) {
	err := fmt.Errorf("%w: %w", electricitytrading.ErrInvalidParameter, electricitytrading.ErrUnsupported)
	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusUnprocessableEntity, statusFromError(err))
	}

	closed := errors.Join(electricitytrading.ErrUnavailable, electricitytrading.ErrClientClosed)
	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusServiceUnavailable, statusFromError(closed))
	}
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom")))
}

func TestHTTPServer_ListOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockTradingAPI(ctrl)
	h := NewHTTPServer(api, logger.Nop(), nil).Router()

	api.EXPECT().ListGridpoolOrdersPage(gomock.Any(), int64(2), gomock.Any(), electricitytrading.PaginationParams{PageSize: 1, PageToken: "t0"}).
		DoAndReturn(func(_ context.Context, _ int64, f electricitytrading.GridpoolOrderFilter, _ electricitytrading.PaginationParams) ([]electricitytrading.OrderDetail, electricitytrading.PaginationInfo, error) {
			assert.Equal(t, []domain.OrderState{domain.OrderStateActive, domain.OrderStatePending}, f.States)
			require.NotNil(t, f.Side)
			assert.Equal(t, domain.MarketSideSell, *f.Side)
			require.NotNil(t, f.DeliveryArea)
			assert.Equal(t, "10YDE-EON------1", f.DeliveryArea.Code)
			return []domain.OrderDetail{detail()}, domain.PaginationInfo{TotalItems: 2, PageSize: 1, NextPageToken: "t1"}, nil
		})

	w := do(t, h, http.MethodGet,
		"/v1/gridpools/2/orders?state=ACTIVE&state=PENDING&side=SELL&area_code=10YDE-EON------1&area_code_type=EUROPE_EIC&page_size=1&page_token=t0", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page dto.OrderPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Orders, 1)
	assert.Equal(t, "t1", page.Pagination.NextPageToken)
}

func TestHTTPServer_UpdateCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockTradingAPI(ctrl)
	h := NewHTTPServer(api, logger.Nop(), nil).Router()

	api.EXPECT().UpdateGridpoolOrder(gomock.Any(), int64(1), int64(11), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, u electricitytrading.UpdateOrder) (electricitytrading.OrderDetail, error) {
			require.NotNil(t, u.Quantity)
			assert.True(t, u.Quantity.MWh.Equal(decimal.RequireFromString("4.5")))
			assert.Equal(t, []domain.UpdateField{domain.UpdateFieldTag}, u.Clear)
			return detail(), nil
		})
	api.EXPECT().CancelGridpoolOrder(gomock.Any(), int64(1), int64(11)).Return(detail(), nil)
	api.EXPECT().CancelAllGridpoolOrders(gomock.Any(), int64(1)).Return(int64(1), nil)

	w := do(t, h, http.MethodPatch, "/v1/gridpools/1/orders/11", `{"quantity_mwh": "4.5", "clear": ["tag"]}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodDelete, "/v1/gridpools/1/orders/11", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodDelete, "/v1/gridpools/1/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"gridpool_id": 1}`, w.Body.String())
}

func TestHTTPServer_RateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockTradingAPI(ctrl)
	h := NewHTTPServer(api, logger.Nop(), middleware.NewRateLimiter(0.001, 1)).Router()
	api.EXPECT().CancelAllGridpoolOrders(gomock.Any(), int64(1)).Return(int64(1), nil).Times(1)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/v1/gridpools/1/orders", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodDelete, "/v1/gridpools/1/orders", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func liveClient(t *testing.T) (*electricitytrading.Client, *core.Engine) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	eng := core.NewEngine(in_memory.NewMemoryRepo(), in_memory.NewCache())
	srv := grpc.NewServer()
	pb.RegisterElectricityTradingServiceServer(srv, grpcapi.NewGRPCServer(eng))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := electricitytrading.NewClient("grpc://127.0.0.1:9090?ssl=false",
		electricitytrading.WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		})))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, eng
}

// TestHTTPServer_StreamPublicTrades verifies trades are relayed as server-sent events.
func TestHTTPServer_StreamPublicTrades(t *testing.T) {
	c, eng := liveClient(t)
	ts := httptest.NewServer(NewHTTPServer(c, logger.Nop(), nil).Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/streams/public-trades?state=ACTIVE", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	d := detail()
	want, err := eng.RecordPublicTrade(ctx, domain.PublicTrade{
		BuyDeliveryArea:  d.Order.DeliveryArea,
		SellDeliveryArea: d.Order.DeliveryArea,
		DeliveryPeriod:   d.Order.DeliveryPeriod,
		Price:            d.Order.Price,
		Quantity:         d.Order.Quantity,
		State:            domain.TradeStateActive,
	})
	require.NoError(t, err)

	var event, data string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "event:"); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data:"); ok {
			data = v
			break
		}
	}
	assert.Equal(t, "public_trade", event)
	var got dto.PublicTrade
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "ACTIVE", got.State)
}
