package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

func (h HandlerSet) CheckoutQuote(c *gin.Context) {
	quote := h.checkout.Quote()
	c.JSON(http.StatusOK, gin.H{
		"quote":           quote,
		"displaySubtotal": h.money.Format(quote.Subtotal, false),
		"displayShipping": h.money.Format(quote.Shipping, false),
		"displayTax":      h.money.Format(quote.Tax, false),
		"displayTotal":    h.money.Format(quote.Total, false),
	})
}

type placeOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

func (h HandlerSet) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.checkout.PlaceOrder(c.Request.Context(), req.ShippingAddress)
	if !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":     false,
			"error":       result.Err,
			"fieldErrors": result.FieldErrors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   result.Order,
	})
}

func (h HandlerSet) MyOrders(c *gin.Context) {
	orders, err := h.backend.MyOrders(c.Request.Context())
	if err != nil {
		sendBackendError(c, err, "Failed to load orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h HandlerSet) CancelOrder(c *gin.Context) {
	if err := h.backend.CancelOrder(c.Request.Context(), c.Param("id")); err != nil {
		sendBackendError(c, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
