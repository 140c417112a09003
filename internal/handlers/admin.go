package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

func (h HandlerSet) AdminStats(c *gin.Context) {
	stats, err := h.backend.AdminStats(c.Request.Context())
	if err != nil {
		sendBackendError(c, err, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"displayRevenue": h.money.FormatDetailed(stats.TotalRevenue),
	})
}

func (h HandlerSet) AdminOrders(c *gin.Context) {
	query := api.OrderQuery{Status: c.Query("status")}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}

	page, err := h.backend.AdminOrders(c.Request.Context(), query)
	if err != nil {
		sendBackendError(c, err, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, page)
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h HandlerSet) AdminUpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.backend.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		sendBackendError(c, err, "Failed to update order status")
		return
	}

	h.notices.Success("Order status updated")
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	users, err := h.backend.ListUsers(c.Request.Context())
	if err != nil {
		sendBackendError(c, err, "Failed to load users")
		return
	}
	if users == nil {
		users = []models.Identity{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type userRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

func (h HandlerSet) AdminUpdateUserRole(c *gin.Context) {
	var req userRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := h.backend.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		sendBackendError(c, err, "Failed to update user role")
		return
	}

	h.notices.Success("User role updated")
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h HandlerSet) AdminCreateProduct(c *gin.Context) {
	var input api.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.backend.CreateProduct(c.Request.Context(), input)
	if err != nil {
		sendBackendError(c, err, "Failed to create product")
		return
	}

	h.notices.Success("Product created successfully!")
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h HandlerSet) AdminUpdateProduct(c *gin.Context) {
	var input api.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.backend.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		sendBackendError(c, err, "Failed to update product")
		return
	}

	h.notices.Success("Product updated successfully!")
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h HandlerSet) AdminDeleteProduct(c *gin.Context) {
	if err := h.backend.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		sendBackendError(c, err, "Failed to delete product")
		return
	}

	h.notices.Success("Product deleted")
	c.Status(http.StatusNoContent)
}
