package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state. Stored as its string form.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
	StatusRefunded   Status = "Refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Order is a placed order. Monetary fields are captured once at creation;
// later catalog price edits never touch them. Subtotal is implied:
// total - tax - shipping.
type Order struct {
	ID              int             `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      int             `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Status          Status          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	City            string          `json:"city"`
	PostalCode      string          `json:"postalCode"`
	Country         string          `json:"country"`
	Notes           *string         `json:"notes,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	ShippedDate     *time.Time      `json:"shippedDate,omitempty"`
	DeliveredDate   *time.Time      `json:"deliveredDate,omitempty"`
	Items           []Item          `json:"items"`
}

func (o Order) Subtotal() decimal.Decimal {
	return o.TotalAmount.Sub(o.TaxAmount).Sub(o.ShippingCost)
}

// CanBeCancelled: only orders not yet shipped may be cancelled.
func (o Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusProcessing
}

// Item is one order line. UnitPrice is the product price at order time.
type Item struct {
	ID          int             `json:"orderItemId"`
	OrderID     int             `json:"-"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// LineSubtotal is unit price × quantity − discount.
func (i Item) LineSubtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// ShippingInfo carries the destination fields of a create request.
type ShippingInfo struct {
	Address    string
	City       string
	PostalCode string
	Country    string
	Notes      *string
}

// Line is one (product, quantity) pair of a create request.
type Line struct {
	ProductID int
	Quantity  int
}

// FormatNumber renders the human-readable order identifier for a UTC day
// (yyyymmdd) and day sequence, e.g. ORD-20250114-0007.
func FormatNumber(day string, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day, seq)
}
