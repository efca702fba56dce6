package customer

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const customerColumns = `customer_id, user_id, email, password_hash, first_name, last_name, phone,
        shipping_address, city, postal_code, country, is_admin, created_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) scanRow(row *sql.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.Phone, &c.ShippingAddress, &c.City, &c.PostalCode, &c.Country, &c.IsAdmin, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	return r.scanRow(r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id))
}

func (r *PostgresRepository) GetByUserID(userID string) (Customer, error) {
	return r.scanRow(r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID))
}

func (r *PostgresRepository) GetByEmail(email string) (Customer, error) {
	return r.scanRow(r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email))
}

func (r *PostgresRepository) Create(c Customer) (Customer, error) {
	err := r.db.QueryRow(`INSERT INTO customers (user_id, email, password_hash, first_name, last_name, phone,
            shipping_address, city, postal_code, country, is_admin)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING customer_id, created_at`,
		c.UserID, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.Phone,
		c.ShippingAddress, c.City, c.PostalCode, c.Country, c.IsAdmin).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Customer) (Customer, error) {
	res, err := r.db.Exec(`UPDATE customers SET first_name = $1, last_name = $2, phone = $3,
            shipping_address = $4, city = $5, postal_code = $6, country = $7
        WHERE customer_id = $8`,
		c.FirstName, c.LastName, c.Phone, c.ShippingAddress, c.City, c.PostalCode, c.Country, id)
	if err != nil {
		return Customer{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Customer{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}
