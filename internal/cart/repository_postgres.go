package cart

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const itemColumns = `ci.cart_item_id, ci.cart_id, ci.product_id, p.name, p.price, ci.quantity, ci.added_at, p.image_url`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreate(customerID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`SELECT cart_id, customer_id, created_at, updated_at FROM carts WHERE customer_id = $1`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		return c, nil
	}
	if err != sql.ErrNoRows {
		return Cart{}, err
	}
	// first access creates the cart; the unique constraint makes a concurrent
	// double-create collapse to the existing row
	err = r.db.QueryRow(`INSERT INTO carts (customer_id) VALUES ($1)
        ON CONFLICT (customer_id) DO UPDATE SET updated_at = carts.updated_at
        RETURNING cart_id, customer_id, created_at, updated_at`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Items(cartID int) ([]Item, error) {
	rows, err := r.db.Query(`SELECT `+itemColumns+`
        FROM cart_items ci
        JOIN products p ON p.product_id = ci.product_id
        WHERE ci.cart_id = $1
        ORDER BY ci.cart_item_id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.AddedAt, &item.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteItemsBefore(cartID int, cutoff time.Time) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND added_at < $2`, cartID, cutoff)
	return err
}

func (r *PostgresRepository) getItemWhere(where string, args ...interface{}) (Item, error) {
	var item Item
	err := r.db.QueryRow(`SELECT `+itemColumns+`
        FROM cart_items ci
        JOIN products p ON p.product_id = ci.product_id
        WHERE `+where, args...).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.AddedAt, &item.ImageURL)
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) GetItem(cartItemID int) (Item, error) {
	return r.getItemWhere(`ci.cart_item_id = $1`, cartItemID)
}

func (r *PostgresRepository) GetItemByProduct(cartID, productID int) (Item, error) {
	return r.getItemWhere(`ci.cart_id = $1 AND ci.product_id = $2`, cartID, productID)
}

func (r *PostgresRepository) InsertItem(cartID, productID, qty int, addedAt time.Time) error {
	// the (cart_id, product_id) unique constraint turns a concurrent
	// duplicate add into an increment instead of a second row
	_, err := r.db.Exec(`INSERT INTO cart_items (cart_id, product_id, quantity, added_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (cart_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, added_at = EXCLUDED.added_at`,
		cartID, productID, qty, addedAt)
	return err
}

func (r *PostgresRepository) UpdateItemQuantity(cartItemID, qty int, addedAt time.Time) error {
	var res sql.Result
	var err error
	if addedAt.IsZero() {
		res, err = r.db.Exec(`UPDATE cart_items SET quantity = $1 WHERE cart_item_id = $2`, qty, cartItemID)
	} else {
		res, err = r.db.Exec(`UPDATE cart_items SET quantity = $1, added_at = $2 WHERE cart_item_id = $3`, qty, addedAt, cartItemID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(cartItemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_item_id = $1`, cartItemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(cartID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *PostgresRepository) Touch(cartID int, at time.Time) error {
	_, err := r.db.Exec(`UPDATE carts SET updated_at = $1 WHERE cart_id = $2`, at, cartID)
	return err
}
