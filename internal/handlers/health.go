package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Backend     string `json:"backend"`
	Session     string `json:"session"`
	CartItems   int    `json:"cartItems"`
}

func (h HandlerSet) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Environment: h.cfg.Environment,
		Backend:     h.cfg.Backend.BaseURL,
		Session:     string(h.session.Snapshot().State),
		CartItems:   h.cart.ItemCount(),
	})
}
