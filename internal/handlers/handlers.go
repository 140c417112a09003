package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/cart"
	"github.com/Malithmadhushantha/asali-frontend/internal/checkout"
	"github.com/Malithmadhushantha/asali-frontend/internal/config"
	"github.com/Malithmadhushantha/asali-frontend/internal/currency"
	"github.com/Malithmadhushantha/asali-frontend/internal/middleware"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/session"
)

// HandlerSet is the view layer: each route dispatches one page intent
// to a manager and re-renders from its snapshot.
type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	session  *session.Manager
	cart     *cart.Manager
	checkout *checkout.Service
	backend  *api.Client
	money    *currency.Formatter
	notices  *notify.Bus
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	sessionManager *session.Manager,
	cartManager *cart.Manager,
	checkoutService *checkout.Service,
	backend *api.Client,
	money *currency.Formatter,
	notices *notify.Bus,
) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		session:  sessionManager,
		cart:     cartManager,
		checkout: checkoutService,
		backend:  backend,
		money:    money,
		notices:  notices,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		sess := v1.Group("/session")
		sess.GET("", h.SessionState)
		sess.POST("/login", h.Login)
		sess.POST("/register", h.RegisterAccount)
		sess.POST("/google", h.GoogleLogin)
		sess.POST("/logout", h.Logout)
		sess.PUT("/profile", h.UpdateProfile)

		catalog := v1.Group("/catalog")
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/products/:id", h.GetProduct)

		cartGroup := v1.Group("/cart")
		cartGroup.GET("", h.CartState)
		cartGroup.POST("/items", h.AddToCart)
		cartGroup.PUT("/items/:id", h.UpdateCartItem)
		cartGroup.DELETE("/items/:id", h.RemoveCartItem)
		cartGroup.DELETE("", h.ClearCart)

		v1.GET("/checkout/quote", h.CheckoutQuote)
		v1.POST("/checkout", h.PlaceOrder)

		v1.GET("/orders", h.MyOrders)
		v1.PATCH("/orders/:id/cancel", h.CancelOrder)

		v1.GET("/notices", h.DrainNotices)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin(h.session))
		admin.GET("/stats", h.AdminStats)
		admin.GET("/orders", h.AdminOrders)
		admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/users", h.AdminListUsers)
		admin.PATCH("/users/:id/role", h.AdminUpdateUserRole)
		admin.POST("/products", h.AdminCreateProduct)
		admin.PUT("/products/:id", h.AdminUpdateProduct)
		admin.DELETE("/products/:id", h.AdminDeleteProduct)
	}
}

func (h HandlerSet) DrainNotices(c *gin.Context) {
	notices := h.notices.Drain()
	if notices == nil {
		notices = []notify.Notice{}
	}
	c.JSON(200, gin.H{"notices": notices})
}
