// Package stock is the ledger over products.stock_quantity. Every mutation
// is a single conditional SQL statement so debits stay atomic relative to
// whatever transaction the caller is running.
package stock

import (
	"database/sql"
	"errors"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Queryer is satisfied by both *sql.DB and *sql.Tx. Order creation passes
// its transaction so a debit never outlives a failed order insert.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// LowStockThreshold mirrors the catalog's restock warning level.
const LowStockThreshold = 10

// AvailabilityInfo is the read-side view of a product's stock position.
type AvailabilityInfo struct {
	Exists       bool `json:"exists"`
	Stock        int  `json:"stock"`
	IsLowStock   bool `json:"isLowStock"`
	IsOutOfStock bool `json:"isOutOfStock"`
}

// Reserve debits qty units only when at least that many remain. The
// decrement and the check are one statement, so two concurrent orders can
// never both pass on the last unit.
func Reserve(q Queryer, productID, qty int) error {
	res, err := q.Exec(`UPDATE products SET stock_quantity = stock_quantity - $2
        WHERE product_id = $1 AND stock_quantity >= $2`, productID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// zero rows: either the product is missing or the stock ran short
	var current int
	err = q.QueryRow(`SELECT stock_quantity FROM products WHERE product_id = $1`, productID).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInsufficientStock
}

// Release credits qty units back. Only orders that previously reserved call
// this, so the credit is unconditional.
func Release(q Queryer, productID, qty int) error {
	res, err := q.Exec(`UPDATE products SET stock_quantity = stock_quantity + $2
        WHERE product_id = $1`, productID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Availability reports the current stock position of a product.
func Availability(q Queryer, productID int) (AvailabilityInfo, error) {
	var current int
	err := q.QueryRow(`SELECT stock_quantity FROM products WHERE product_id = $1`, productID).Scan(&current)
	if err == sql.ErrNoRows {
		return AvailabilityInfo{}, nil
	}
	if err != nil {
		return AvailabilityInfo{}, err
	}
	return AvailabilityInfo{
		Exists:       true,
		Stock:        current,
		IsLowStock:   current < LowStockThreshold,
		IsOutOfStock: current <= 0,
	}, nil
}
