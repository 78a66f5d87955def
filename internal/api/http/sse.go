package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	"github.com/olyamironova/electricity-trading-client/internal/api/dto"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
)

// openEventStream sends the SSE headers right away so the caller knows the
// subscription is live before the first event.
func openEventStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()
}

// relay forwards sub to the client as SSE events named event until either
// side goes away. A stream failure is sent as a final "error" event.
func relay[T, V any](c *gin.Context, sub *electricitytrading.Subscription[T], event string, convert func(T) V) {
	defer sub.Close()
	openEventStream(c)

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v, ok := <-sub.C():
			if !ok {
				if err := sub.Err(); err != nil {
					logger.FromContext(ctx).Warn().Err(err).Msg("upstream stream ended")
					c.SSEvent("error", gin.H{"error": err.Error()})
				}
				return false
			}
			c.SSEvent(event, convert(v))
			return true
		}
	})
}

func (s *HTTPServer) streamOrders(c *gin.Context) {
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
	sub, err := s.API.StreamGridpoolOrders(c.Request.Context(), gridpoolID, filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, sub, "order", dto.FromOrderDetail)
}

func (s *HTTPServer) streamPublicTrades(c *gin.Context) {
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
	sub, err := s.API.StreamPublicTrades(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, sub, "public_trade", dto.FromPublicTrade)
}
