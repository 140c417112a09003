package models

// Product is a catalog item. Once embedded in a cart line it acts as
// an immutable snapshot of price and stock at add-time; the server is
// the final arbiter of both at checkout.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}
