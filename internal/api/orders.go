package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

// OrderRequest is the checkout submission. The server re-validates
// stock and price; the client's cart snapshots are only a proposal.
type OrderRequest struct {
	Items           []models.OrderItem     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order)
	return order, err
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &orders)
	return orders, err
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/cancel", nil, nil, nil)
}

type OrderQuery struct {
	Status string
	Page   int
	Limit  int
}

func (q OrderQuery) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

type OrderPage struct {
	Orders      []models.Order `json:"orders"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	Total       int            `json:"total"`
}

func (c *Client) AdminOrders(ctx context.Context, query OrderQuery) (OrderPage, error) {
	var page OrderPage
	err := c.do(ctx, http.MethodGet, "/orders/admin/all", query.values(), nil, &page)
	return page, err
}

func (c *Client) AdminStats(ctx context.Context) (models.OrderStats, error) {
	var stats models.OrderStats
	err := c.do(ctx, http.MethodGet, "/orders/admin/stats", nil, nil, &stats)
	return stats, err
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/status", nil, statusRequest{Status: status}, &order)
	return order, err
}
