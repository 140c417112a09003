package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

type ProductQuery struct {
	Search   string
	Category string
	SortBy   string
	Featured bool
	Page     int
	Limit    int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

type ProductPage struct {
	Products    []models.Product `json:"products"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	Total       int              `json:"total"`
}

func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (ProductPage, error) {
	var page ProductPage
	err := c.do(ctx, http.MethodGet, "/products", query.values(), nil, &page)
	return page, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &product)
	return product, err
}

// ProductInput is the admin product create/update body. Images are
// URLs passed through as-is; upload itself lives outside this client.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images,omitempty"`
	Featured    bool     `json:"featured"`
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodPost, "/products", nil, input, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodPut, "/products/"+id, nil, input, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}
