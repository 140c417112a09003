package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
)

func (h HandlerSet) ListProducts(c *gin.Context) {
	query := api.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy"),
		Featured: c.Query("featured") == "true",
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}

	page, err := h.backend.ListProducts(c.Request.Context(), query)
	if err != nil {
		sendBackendError(c, err, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h HandlerSet) GetProduct(c *gin.Context) {
	product, err := h.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendBackendError(c, err, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":      product,
		"displayPrice": h.money.Format(product.Price, false),
	})
}

func sendBackendError(c *gin.Context, err error, fallback string) {
	status := http.StatusBadGateway
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}
	c.JSON(status, gin.H{"error": api.Message(err, fallback)})
}
