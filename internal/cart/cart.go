package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaleAfter is how long a cart item may sit before the next read sweeps it.
const StaleAfter = 24 * time.Hour

// Cart is a customer's single active cart row.
type Cart struct {
	ID         int       `json:"cartId"`
	CustomerID int       `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Item is a cart line joined with the product fields the view needs.
// Quantity lives here; price is always the live product price (carts do not
// capture prices, orders do).
type Item struct {
	ID           int             `json:"cartItemId"`
	CartID       int             `json:"-"`
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"addedAt"`
	ImageURL     string          `json:"imageUrl"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// View is the cart envelope returned to the request layer.
type View struct {
	CartID      int             `json:"cartId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Items       []ItemView      `json:"items"`
}

type ItemView struct {
	CartItemID   int             `json:"cartItemId"`
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ImageURL     string          `json:"imageUrl"`
}

func buildView(cartID int, items []Item) View {
	view := View{CartID: cartID, TotalAmount: decimal.Zero, Items: make([]ItemView, 0, len(items))}
	for _, item := range items {
		sub := item.Subtotal()
		view.TotalAmount = view.TotalAmount.Add(sub)
		view.TotalItems += item.Quantity
		view.Items = append(view.Items, ItemView{
			CartItemID:   item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			Subtotal:     sub,
			ImageURL:     item.ImageURL,
		})
	}
	return view
}
