package models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Identity is the server's view of the signed-in user. It is replaced
// wholesale on login and verification, merged field-wise on profile
// update, and cleared on logout.
type Identity struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    Role     `json:"role"`
	Phone   string   `json:"phone,omitempty"`
	Picture string   `json:"picture,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Merge overlays the non-empty fields of other onto a copy of i.
func (i Identity) Merge(other Identity) Identity {
	out := i
	if other.ID != "" {
		out.ID = other.ID
	}
	if other.Name != "" {
		out.Name = other.Name
	}
	if other.Email != "" {
		out.Email = other.Email
	}
	if other.Role != "" {
		out.Role = other.Role
	}
	if other.Phone != "" {
		out.Phone = other.Phone
	}
	if other.Picture != "" {
		out.Picture = other.Picture
	}
	if other.Address != nil {
		out.Address = other.Address
	}
	return out
}
