package product

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `product_id, name, description, price, stock_quantity, image_url,
        category_id, sku, is_active, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(s interface{ Scan(...interface{}) error }) (Product, error) {
	var p Product
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL,
		&p.CategoryID, &p.SKU, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) queryProducts(query string, args ...interface{}) ([]Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List() ([]Product, error) {
	return r.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY product_id`)
}

func (r *PostgresRepository) ListByCategory(categoryID int) ([]Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products WHERE is_active AND category_id = $1 ORDER BY product_id`, categoryID)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products (name, description, price, stock_quantity, image_url, category_id, sku, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING product_id, created_at`,
		p.Name, p.Description, p.Price, p.StockQuantity, p.ImageURL, p.CategoryID, p.SKU, p.IsActive).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	err := r.db.QueryRow(`UPDATE products SET name = $1, description = $2, price = $3, stock_quantity = $4,
            image_url = $5, category_id = $6, sku = $7, is_active = $8, updated_at = now()
        WHERE product_id = $9
        RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.StockQuantity, p.ImageURL, p.CategoryID, p.SKU, p.IsActive, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL,
			&p.CategoryID, &p.SKU, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete deactivates rather than removes: order_items keep their product
// references and historical orders stay intact.
func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`UPDATE products SET is_active = FALSE, updated_at = now() WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
