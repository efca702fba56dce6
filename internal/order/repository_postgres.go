package order

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/stock"
)

type PostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// counterQuery atomically claims the next sequence number for a UTC day.
// Running it inside the order transaction means an aborted order releases
// its number only if the whole unit rolls back, and two concurrent creates
// can never observe the same sequence.
const counterQuery = `INSERT INTO order_counters (day, seq) VALUES ($1, 1)
        ON CONFLICT (day) DO UPDATE SET seq = order_counters.seq + 1
        RETURNING seq`

const orderColumns = `o.order_id, o.order_number, o.customer_id, c.first_name, c.last_name,
        o.total_amount, o.tax_amount, o.shipping_cost, o.status, o.shipping_address, o.city,
        o.postal_code, o.country, o.notes, o.order_date, o.shipped_date, o.delivered_date`

// Create runs the whole unit of work in one transaction: mint the order
// number, conditionally debit stock per line, insert the order and its
// items. Any failure rolls everything back, including the debits.
func (r *PostgresRepository) Create(ord Order) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	day := r.now().UTC().Format("20060102")
	var seq int
	if err := tx.QueryRow(counterQuery, day).Scan(&seq); err != nil {
		return Order{}, err
	}
	ord.OrderNumber = FormatNumber(day, seq)

	// stock may have moved since the service validated, so every line is
	// re-checked here by the conditional debit
	for _, item := range ord.Items {
		if err := stock.Reserve(tx, item.ProductID, item.Quantity); err != nil {
			switch err {
			case stock.ErrNotFound:
				return Order{}, ErrProductNotFound
			case stock.ErrInsufficientStock:
				return Order{}, ErrInsufficientStock
			default:
				return Order{}, err
			}
		}
	}

	err = tx.QueryRow(`INSERT INTO orders (order_number, customer_id, total_amount, tax_amount, shipping_cost,
            status, shipping_address, city, postal_code, country, notes, order_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING order_id`,
		ord.OrderNumber, ord.CustomerID, ord.TotalAmount, ord.TaxAmount, ord.ShippingCost,
		string(ord.Status), ord.ShippingAddress, ord.City, ord.PostalCode, ord.Country,
		ord.Notes, ord.OrderDate).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range ord.Items {
		ord.Items[i].OrderID = ord.ID
		err = tx.QueryRow(`INSERT INTO order_items (order_id, product_id, quantity, unit_price, discount)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING order_item_id`,
			ord.ID, ord.Items[i].ProductID, ord.Items[i].Quantity,
			ord.Items[i].UnitPrice, ord.Items[i].Discount).Scan(&ord.Items[i].ID)
		if err != nil {
			return Order{}, err
		}
		ord.Items[i].Subtotal = ord.Items[i].LineSubtotal()
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	orders, err := r.queryOrders(`SELECT `+orderColumns+`
        FROM orders o JOIN customers c ON c.customer_id = o.customer_id
        WHERE o.order_id = $1`, id)
	if err != nil {
		return Order{}, err
	}
	if len(orders) == 0 {
		return Order{}, ErrNotFound
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+`
        FROM orders o JOIN customers c ON c.customer_id = o.customer_id
        WHERE o.customer_id = $1
        ORDER BY o.order_date DESC`, customerID)
}

func (r *PostgresRepository) ListRecent(limit int) ([]Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+`
        FROM orders o JOIN customers c ON c.customer_id = o.customer_id
        ORDER BY o.order_date DESC
        LIMIT $1`, limit)
}

// Cancel flips the status and restores every line's stock in one transaction.
// The status guard on the UPDATE makes the whole unit conditional: a second
// cancel racing behind the first matches zero rows and releases nothing.
func (r *PostgresRepository) Cancel(ord Order) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE orders SET status = $1 WHERE order_id = $2 AND status IN ($3, $4)`,
		string(StatusCancelled), ord.ID, string(StatusPending), string(StatusProcessing))
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrInvalidTransition
	}

	for _, item := range ord.Items {
		if err := stock.Release(tx, item.ProductID, item.Quantity); err != nil && err != stock.ErrNotFound {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	ord.Status = StatusCancelled
	return ord, nil
}

func (r *PostgresRepository) UpdateStatus(ord Order) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = $1, shipped_date = $2, delivered_date = $3
        WHERE order_id = $4`,
		string(ord.Status), ord.ShippedDate, ord.DeliveredDate, ord.ID)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *PostgresRepository) TotalSales(start, end *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status NOT IN ($1, $2)`
	args := []interface{}{string(StatusCancelled), string(StatusRefunded)}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND order_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND order_date <= $%d", len(args))
	}

	var sum decimal.Decimal
	if err := r.db.QueryRow(query, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *PostgresRepository) queryOrders(query string, args ...interface{}) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var ord Order
		var first, last string
		var status string
		if err := rows.Scan(&ord.ID, &ord.OrderNumber, &ord.CustomerID, &first, &last,
			&ord.TotalAmount, &ord.TaxAmount, &ord.ShippingCost, &status, &ord.ShippingAddress,
			&ord.City, &ord.PostalCode, &ord.Country, &ord.Notes, &ord.OrderDate,
			&ord.ShippedDate, &ord.DeliveredDate); err != nil {
			return nil, err
		}
		ord.Status = Status(status)
		ord.CustomerName = strings.TrimSpace(first + " " + last)
		ord.Items = make([]Item, 0)
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(`SELECT oi.order_item_id, oi.order_id, oi.product_id, p.name,
            oi.quantity, oi.unit_price, oi.discount
        FROM order_items oi
        JOIN products p ON p.product_id = oi.product_id
        WHERE oi.order_id = ANY($1::int[])
        ORDER BY oi.order_item_id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byID := make(map[int]int, len(orders))
	for i, ord := range orders {
		byID[ord.ID] = i
	}
	for itemRows.Next() {
		var item Item
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Discount); err != nil {
			return nil, err
		}
		item.Subtotal = item.LineSubtotal()
		if i, ok := byID[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}
