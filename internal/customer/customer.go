package customer

import (
	"strings"
	"time"
)

// Customer is the shop profile linked to an authenticated account. The
// account itself is identified by the opaque UserID string carried in JWT
// claims; CustomerID is the internal key the rest of the system references.
type Customer struct {
	ID              int       `json:"customerId"`
	UserID          string    `json:"userId"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	ShippingAddress string    `json:"shippingAddress"`
	City            string    `json:"city"`
	PostalCode      string    `json:"postalCode"`
	Country         string    `json:"country"`
	IsAdmin         bool      `json:"isAdmin"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
