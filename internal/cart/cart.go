package cart

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/store"
)

// Line is one (product, size, color) combination in the cart. The
// embedded product is a snapshot taken at add-time, never refreshed;
// its stock figure is a display hint and a local clamp, with the
// server the final arbiter at checkout.
type Line struct {
	ID       string         `json:"id"`
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Size     string         `json:"size"`
	Color    string         `json:"color"`
}

// LineID is the deterministic composite key: same product, size and
// color always land on the same line.
func LineID(productID, size, color string) string {
	return productID + "-" + size + "-" + color
}

// Outcome is the discriminated result of a cart command. Rejections
// are expected and carry the user-facing reason; they never mutate
// state.
type Outcome struct {
	OK     bool
	Reason string
}

func accepted() Outcome              { return Outcome{OK: true} }
func rejected(reason string) Outcome { return Outcome{Reason: reason} }

// Manager owns the cart line collection. Commands are synchronous and
// every accepted mutation rewrites the persistence slot before it
// returns; cart sizes are small enough that write volume is a
// non-issue next to correctness.
type Manager struct {
	store store.Store
	bus   *notify.Bus
	log   zerolog.Logger

	mu    sync.Mutex
	lines []Line
}

// New hydrates the cart from the persistence slot. Corrupt or absent
// data silently becomes an empty cart.
func New(st store.Store, bus *notify.Bus, log zerolog.Logger) *Manager {
	m := &Manager{
		store: st,
		bus:   bus,
		log:   log,
	}

	if raw, ok := st.Read(store.SlotCart); ok {
		var lines []Line
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			log.Warn().Err(err).Msg("saved cart unreadable, starting empty")
		} else {
			m.lines = lines
		}
	}
	return m
}

func (m *Manager) AddLine(product models.Product, quantity int, size, color string) Outcome {
	if size == "" || color == "" {
		m.bus.Error("Please select size and color")
		return rejected("Please select size and color")
	}
	if quantity <= 0 {
		m.bus.Error("Quantity must be at least 1")
		return rejected("Quantity must be at least 1")
	}

	m.mu.Lock()

	id := LineID(product.ID, size, color)
	existing := -1
	for i := range m.lines {
		if m.lines[i].ID == id {
			existing = i
			break
		}
	}

	// The stock clamp covers the combined quantity, judged against the
	// snapshot taken when the line was first added.
	if existing >= 0 {
		line := &m.lines[existing]
		if line.Quantity+quantity > line.Product.Stock {
			m.mu.Unlock()
			m.bus.Error("Not enough stock available")
			return rejected("Not enough stock available")
		}
		line.Quantity += quantity
	} else {
		if quantity > product.Stock {
			m.mu.Unlock()
			m.bus.Error("Not enough stock available")
			return rejected("Not enough stock available")
		}
		m.lines = append(m.lines, Line{
			ID:       id,
			Product:  product,
			Quantity: quantity,
			Size:     size,
			Color:    color,
		})
	}

	m.persistLocked()
	m.mu.Unlock()

	m.bus.Success("Added to cart!")
	return accepted()
}

// RemoveLine is idempotent: an absent id is a successful no-op.
func (m *Manager) RemoveLine(lineID string) Outcome {
	m.mu.Lock()

	kept := m.lines[:0]
	for _, line := range m.lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	m.lines = kept

	m.persistLocked()
	m.mu.Unlock()

	m.bus.Success("Removed from cart")
	return accepted()
}

func (m *Manager) SetQuantity(lineID string, quantity int) Outcome {
	if quantity <= 0 {
		return m.RemoveLine(lineID)
	}

	m.mu.Lock()
	for i := range m.lines {
		if m.lines[i].ID != lineID {
			continue
		}
		if quantity > m.lines[i].Product.Stock {
			m.mu.Unlock()
			m.bus.Error("Not enough stock available")
			return rejected("Not enough stock available")
		}
		m.lines[i].Quantity = quantity
		m.persistLocked()
		m.mu.Unlock()
		return accepted()
	}
	m.mu.Unlock()
	return accepted()
}

func (m *Manager) Clear() Outcome {
	m.mu.Lock()
	m.lines = nil
	m.persistLocked()
	m.mu.Unlock()

	m.bus.Success("Cart cleared")
	return accepted()
}

// Reset empties the cart without a notification, for flows that carry
// their own feedback.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.lines = nil
	m.persistLocked()
	m.mu.Unlock()
}

// Lines returns the cart in insertion order.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *Manager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total float64
	for _, line := range m.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount sums quantities across lines, not the line count.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int
	for _, line := range m.lines {
		count += line.Quantity
	}
	return count
}

func (m *Manager) persistLocked() {
	data, err := json.Marshal(m.lines)
	if err != nil {
		m.log.Error().Err(err).Msg("encode cart failed")
		return
	}
	if err := m.store.Write(store.SlotCart, string(data)); err != nil {
		m.log.Warn().Err(err).Msg("persist cart failed")
	}
}
