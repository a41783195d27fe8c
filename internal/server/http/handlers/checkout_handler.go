package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/server/http/dto"
	"github.com/polkiloo/restomart/internal/usecase"
)

// CheckoutHandler drives the operator's ordering session.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// View handles GET /api/checkout.
func (h *CheckoutHandler) View(c *gin.Context) {
	view, err := h.facade.Checkout(c.Request.Context(), CurrentPrincipal(c).UserID)
	h.respond(c, view, err)
}

// SetQuantity handles PUT /api/checkout/items/:id.
func (h *CheckoutHandler) SetQuantity(c *gin.Context) {
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.SetQuantity(c.Request.Context(), CurrentPrincipal(c).UserID, c.Param("id"), req.Quantity)
	h.respond(c, view, err)
}

// RemoveItem handles DELETE /api/checkout/items/:id.
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	view, err := h.facade.RemoveItem(c.Request.Context(), CurrentPrincipal(c).UserID, c.Param("id"))
	h.respond(c, view, err)
}

// Cancel handles DELETE /api/checkout.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelCheckout(CurrentPrincipal(c).UserID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSettlement handles PATCH /api/checkout/settlement.
func (h *CheckoutHandler) UpdateSettlement(c *gin.Context) {
	var req dto.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.UpdateSettlement(c.Request.Context(), CurrentPrincipal(c).UserID, toSettlementUpdate(req))
	h.respond(c, view, err)
}

// Submit handles POST /api/checkout/submit. An empty body means no override.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	order, err := h.facade.Submit(c.Request.Context(), CurrentPrincipal(c), req.Override)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *CheckoutHandler) respond(c *gin.Context, view *usecase.CheckoutView, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutResponse(view))
}
