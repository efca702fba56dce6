package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold marks products that should be restocked soon.
const LowStockThreshold = 10

// Product is a catalog entry. Price is fixed-point; StockQuantity is the
// authoritative inventory count and never goes negative (enforced by the
// stock ledger and a DB check constraint).
type Product struct {
	ID            int             `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	CategoryID    *int            `json:"categoryId,omitempty"`
	SKU           string          `json:"sku"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

func (p Product) IsLowStock() bool {
	return p.StockQuantity < LowStockThreshold
}

func (p Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}
