package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/cart"
)

type cartResponse struct {
	Items           []cart.Line `json:"items"`
	ItemCount       int         `json:"itemCount"`
	Subtotal        float64     `json:"subtotal"`
	DisplaySubtotal string      `json:"displaySubtotal"`
}

func (h HandlerSet) cartState() cartResponse {
	lines := h.cart.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	subtotal := h.cart.Subtotal()
	return cartResponse{
		Items:           lines,
		ItemCount:       h.cart.ItemCount(),
		Subtotal:        subtotal,
		DisplaySubtotal: h.money.Format(subtotal, false),
	}
}

func (h HandlerSet) CartState(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartState())
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// AddToCart takes the catalog snapshot at this moment; the stored line
// keeps that snapshot from here on.
func (h HandlerSet) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.backend.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		sendBackendError(c, err, "Failed to load product")
		return
	}

	outcome := h.cart.AddLine(product, req.Quantity, req.Size, req.Color)
	sendCartOutcome(c, h, outcome)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h HandlerSet) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.cart.SetQuantity(c.Param("id"), req.Quantity)
	sendCartOutcome(c, h, outcome)
}

func (h HandlerSet) RemoveCartItem(c *gin.Context) {
	outcome := h.cart.RemoveLine(c.Param("id"))
	sendCartOutcome(c, h, outcome)
}

func (h HandlerSet) ClearCart(c *gin.Context) {
	outcome := h.cart.Clear()
	sendCartOutcome(c, h, outcome)
}

type cartOutcomeResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Cart    cartResponse `json:"cart"`
}

func sendCartOutcome(c *gin.Context, h HandlerSet, outcome cart.Outcome) {
	status := http.StatusOK
	if !outcome.OK {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, cartOutcomeResponse{
		Success: outcome.OK,
		Error:   outcome.Reason,
		Cart:    h.cartState(),
	})
}
