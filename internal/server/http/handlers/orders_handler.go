package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/server/http/dto"
)

// feedEvent is the SSE event name carrying a dataset snapshot.
const feedEvent = "orders"

// OrdersHandler exposes the day's orders.
type OrdersHandler struct {
	facade DayOrdersFacade
}

// NewOrdersHandler constructs OrdersHandler.
func NewOrdersHandler(facade DayOrdersFacade) *OrdersHandler {
	return &OrdersHandler{facade: facade}
}

// Today handles GET /api/orders/today.
func (h *OrdersHandler) Today(c *gin.Context) {
	c.JSON(http.StatusOK, toFeedResponse(h.facade.TodayOrders(c.Request.Context())))
}

// Refresh handles POST /api/orders/today/refresh. A failed reload is reported in the
// body's error field and the previous orders are kept.
func (h *OrdersHandler) Refresh(c *gin.Context) {
	c.JSON(http.StatusOK, toFeedResponse(h.facade.RefreshFeed(c.Request.Context())))
}

// Summary handles GET /api/orders/today/summary.
func (h *OrdersHandler) Summary(c *gin.Context) {
	summary, err := h.facade.DaySummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Stream handles GET /api/orders/today/stream. Every dataset change is sent as an
// "orders" event until the client disconnects. Only the latest pending snapshot is kept.
func (h *OrdersHandler) Stream(c *gin.Context) {
	updates := make(chan dto.FeedResponse, 1)
	unsubscribe := h.facade.SubscribeFeed(func(s feed.Snapshot) {
		resp := toFeedResponse(s)
		for {
			select {
			case updates <- resp:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case resp := <-updates:
			c.SSEvent(feedEvent, resp)
			return true
		}
	})
}
