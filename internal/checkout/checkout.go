package checkout

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/cart"
	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/session"
)

// Rates are configuration, not persisted state.
type Rates struct {
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
}

// Quote is the derived totals block, always recomputed from current
// cart lines.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	Shipping     float64 `json:"shipping"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	ItemCount    int     `json:"itemCount"`
	FreeShipping bool    `json:"freeShipping"`
}

// QuoteLines computes totals for a line set under the given rates.
func QuoteLines(lines []cart.Line, rates Rates) Quote {
	var subtotal float64
	var count int
	for _, line := range lines {
		subtotal += line.Product.Price * float64(line.Quantity)
		count += line.Quantity
	}

	shipping := rates.FlatShippingFee
	if subtotal > rates.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * rates.TaxRate

	return Quote{
		Subtotal:     subtotal,
		Shipping:     shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
		ItemCount:    count,
		FreeShipping: shipping == 0,
	}
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// ValidateAddress returns field-keyed messages for everything wrong
// with a shipping address; an empty map means valid.
func ValidateAddress(a models.ShippingAddress) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(a.Street) == "" {
		errs["street"] = "Street address is required"
	}
	if strings.TrimSpace(a.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(a.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(a.ZipCode) == "" {
		errs["zipCode"] = "ZIP code is required"
	}
	if strings.TrimSpace(a.Country) == "" {
		errs["country"] = "Country is required"
	}
	if strings.TrimSpace(a.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(a.Phone) {
		errs["phone"] = "Invalid phone number"
	}
	return errs
}

// OrderPlacer is the slice of the REST client checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req api.OrderRequest) (models.Order, error)
}

// Auth exposes the current session to checkout.
type Auth interface {
	Snapshot() session.Snapshot
}

// PlaceResult is the discriminated outcome of an order submission.
type PlaceResult struct {
	OK          bool
	Order       models.Order
	Err         string
	FieldErrors map[string]string
}

// Service drives the checkout flow: quote the cart, validate the
// address, submit the order, clear the cart on acceptance. The server
// re-checks stock and price authoritatively; a conflict comes back as
// its error message, never a silent clamp.
type Service struct {
	orders OrderPlacer
	auth   Auth
	cart   *cart.Manager
	rates  Rates
	bus    *notify.Bus
	log    zerolog.Logger
}

func NewService(orders OrderPlacer, auth Auth, cartManager *cart.Manager, rates Rates, bus *notify.Bus, log zerolog.Logger) *Service {
	return &Service{
		orders: orders,
		auth:   auth,
		cart:   cartManager,
		rates:  rates,
		bus:    bus,
		log:    log,
	}
}

func (s *Service) Quote() Quote {
	return QuoteLines(s.cart.Lines(), s.rates)
}

func (s *Service) PlaceOrder(ctx context.Context, address models.ShippingAddress) PlaceResult {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		message := "Your cart is empty"
		s.bus.Error(message)
		return PlaceResult{Err: message}
	}

	if !s.auth.Snapshot().IsAuthenticated {
		message := "Please log in to place an order"
		s.bus.Error(message)
		return PlaceResult{Err: message}
	}

	if fieldErrors := ValidateAddress(address); len(fieldErrors) > 0 {
		message := "Please fill in all required fields"
		s.bus.Error(message)
		return PlaceResult{Err: message, FieldErrors: fieldErrors}
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	order, err := s.orders.CreateOrder(ctx, api.OrderRequest{
		Items:           items,
		ShippingAddress: address,
	})
	if err != nil {
		message := api.Message(err, "Failed to place order")
		s.bus.Error(message)
		return PlaceResult{Err: message}
	}

	s.cart.Reset()
	s.bus.Success("Order placed successfully!")
	s.log.Info().Str("order_id", order.ID).Int("items", len(items)).Msg("order placed")

	return PlaceResult{OK: true, Order: order}
}
