package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	"github.com/olyamironova/electricity-trading-client/internal/api/dto"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/middleware"
)

//go:generate mockgen -source=http_server.go -destination=../../mock/trading_mock.go -package=mock

// TradingAPI is the part of the trading client the gateway exposes.
type TradingAPI interface {
	CreateGridpoolOrder(ctx context.Context, gridpoolID int64, order electricitytrading.Order) (electricitytrading.OrderDetail, error)
	UpdateGridpoolOrder(ctx context.Context, gridpoolID, orderID int64, update electricitytrading.UpdateOrder) (electricitytrading.OrderDetail, error)
	CancelGridpoolOrder(ctx context.Context, gridpoolID, orderID int64) (electricitytrading.OrderDetail, error)
	CancelAllGridpoolOrders(ctx context.Context, gridpoolID int64) (int64, error)
	GetGridpoolOrder(ctx context.Context, gridpoolID, orderID int64) (electricitytrading.OrderDetail, error)
	ListGridpoolOrdersPage(ctx context.Context, gridpoolID int64, filter electricitytrading.GridpoolOrderFilter, page electricitytrading.PaginationParams) ([]electricitytrading.OrderDetail, electricitytrading.PaginationInfo, error)
	ListPublicTradesPage(ctx context.Context, filter electricitytrading.PublicTradeFilter, page electricitytrading.PaginationParams) ([]electricitytrading.PublicTrade, electricitytrading.PaginationInfo, error)
	StreamGridpoolOrders(ctx context.Context, gridpoolID int64, filter electricitytrading.GridpoolOrderFilter) (*electricitytrading.Subscription[electricitytrading.OrderDetail], error)
	StreamPublicTrades(ctx context.Context, filter electricitytrading.PublicTradeFilter) (*electricitytrading.Subscription[electricitytrading.PublicTrade], error)
}

type HTTPServer struct {
	API     TradingAPI
	log     *logger.Logger
	limiter *middleware.RateLimiter
}

// NewHTTPServer builds the gateway. A nil limiter disables rate limiting.
func NewHTTPServer(api TradingAPI, log *logger.Logger, limiter *middleware.RateLimiter) *HTTPServer {
	return &HTTPServer{API: api, log: log, limiter: limiter}
}

func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(s.log), middleware.Logging())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := r.Group("/v1")
	if s.limiter != nil {
		v1.Use(s.limiter.Middleware())
	}
	v1.POST("/gridpools/:gridpool/orders", s.createOrder)
	v1.GET("/gridpools/:gridpool/orders", s.listOrders)
	v1.DELETE("/gridpools/:gridpool/orders", s.cancelAllOrders)
	v1.GET("/gridpools/:gridpool/orders/:order", s.getOrder)
	v1.PATCH("/gridpools/:gridpool/orders/:order", s.updateOrder)
	v1.DELETE("/gridpools/:gridpool/orders/:order", s.cancelOrder)
	v1.GET("/public-trades", s.listPublicTrades)

	streams := r.Group("/v1/streams")
	if s.limiter != nil {
		streams.Use(s.limiter.Middleware())
	}
	streams.GET("/gridpools/:gridpool/orders", s.streamOrders)
	streams.GET("/public-trades", s.streamPublicTrades)
	return r
}

// Server returns an http.Server for addr without starting it.
func (s *HTTPServer) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// errorStatuses is checked in order; the first match wins when an error
// wraps several sentinels.
var errorStatuses = []struct {
	err    error
	status int
}{
	{electricitytrading.ErrClientClosed, http.StatusServiceUnavailable},
	{electricitytrading.ErrUnsupported, http.StatusUnprocessableEntity},
	{domain.ErrInvalid, http.StatusBadRequest},
	{electricitytrading.ErrInvalidParameter, http.StatusBadRequest},
	{electricitytrading.ErrInvalidArgument, http.StatusBadRequest},
	{electricitytrading.ErrNotFound, http.StatusNotFound},
	{electricitytrading.ErrFailedPrecondition, http.StatusConflict},
	{electricitytrading.ErrAlreadyExists, http.StatusConflict},
	{electricitytrading.ErrUnauthenticated, http.StatusBadGateway},
	{electricitytrading.ErrPermissionDenied, http.StatusBadGateway},
	{electricitytrading.ErrUnavailable, http.StatusServiceUnavailable},
	{electricitytrading.ErrDeadlineExceeded, http.StatusGatewayTimeout},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func (s *HTTPServer) fail(c *gin.Context, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " id"})
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) createOrder(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	var req dto.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := req.ToDomain()
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.API.CreateGridpoolOrder(c.Request.Context(), gridpoolID, order)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromOrderDetail(d))
}

func (s *HTTPServer) updateOrder(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	orderID, ok := idParam(c, "order")
	if !ok {
		return
	}
	var req dto.UpdateOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := req.ToDomain()
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.API.UpdateGridpoolOrder(c.Request.Context(), gridpoolID, orderID, update)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrderDetail(d))
}

func (s *HTTPServer) cancelOrder(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	orderID, ok := idParam(c, "order")
	if !ok {
		return
	}
	d, err := s.API.CancelGridpoolOrder(c.Request.Context(), gridpoolID, orderID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrderDetail(d))
}

func (s *HTTPServer) cancelAllOrders(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	id, err := s.API.CancelAllGridpoolOrders(c.Request.Context(), gridpoolID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CancelAllResponse{GridpoolID: id})
}

func (s *HTTPServer) getOrder(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	orderID, ok := idParam(c, "order")
	if !ok {
		return
	}
	d, err := s.API.GetGridpoolOrder(c.Request.Context(), gridpoolID, orderID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrderDetail(d))
}

func (s *HTTPServer) listOrders(c *gin.Context) {
	gridpoolID, ok := idParam(c, "gridpool")
	if !ok {
		return
	}
	var q dto.OrderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, err := q.Filter()
	if err != nil {
		s.fail(c, err)
		return
	}
	orders, info, err := s.API.ListGridpoolOrdersPage(c.Request.Context(), gridpoolID, filter, q.Pagination())
	if err != nil {
		s.fail(c, err)
		return
	}
	page := dto.OrderPage{Orders: make([]dto.OrderDetail, len(orders)), Pagination: dto.FromPagination(info)}
	for i, d := range orders {
		page.Orders[i] = dto.FromOrderDetail(d)
	}
	c.JSON(http.StatusOK, page)
}

func (s *HTTPServer) listPublicTrades(c *gin.Context) {
	var q dto.TradeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, err := q.Filter()
	if err != nil {
		s.fail(c, err)
		return
	}
	trades, info, err := s.API.ListPublicTradesPage(c.Request.Context(), filter, q.Pagination())
	if err != nil {
		s.fail(c, err)
		return
	}
	page := dto.TradePage{Trades: make([]dto.PublicTrade, len(trades)), Pagination: dto.FromPagination(info)}
	for i, t := range trades {
		page.Trades[i] = dto.FromPublicTrade(t)
	}
	c.JSON(http.StatusOK, page)
}
