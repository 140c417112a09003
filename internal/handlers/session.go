package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/session"
)

func (h HandlerSet) SessionState(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.session.Login(c.Request.Context(), req.Email, req.Password)
	sendAuthResult(c, h.session.Snapshot(), result)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	// Accepted for form compatibility and deliberately ignored:
	// self-registration is always customer.
	Role string `json:"role"`
}

func (h HandlerSet) RegisterAccount(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.session.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	sendAuthResult(c, h.session.Snapshot(), result)
}

type googleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

func (h HandlerSet) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.session.LoginWithIdentityToken(c.Request.Context(), req.Credential)
	sendAuthResult(c, h.session.Snapshot(), result)
}

func (h HandlerSet) Logout(c *gin.Context) {
	h.session.Logout()
	c.JSON(http.StatusOK, h.session.Snapshot())
}

type profileRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address *models.Address `json:"address"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.session.UpdateProfile(c.Request.Context(), api.ProfilePatch{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	sendAuthResult(c, h.session.Snapshot(), result)
}

type authResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Session session.Snapshot `json:"session"`
}

func sendAuthResult(c *gin.Context, snap session.Snapshot, result session.Result) {
	status := http.StatusOK
	if !result.OK {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, authResponse{
		Success: result.OK,
		Error:   result.Err,
		Session: snap,
	})
}
