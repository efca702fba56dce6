package category

import (
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	Create(cat Category) (Category, error)
	Update(id int, cat Category) (Category, error)
	Delete(id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, name, description FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var cat Category
	err := r.db.QueryRow(`SELECT category_id, name, description FROM categories WHERE category_id = $1`, id).
		Scan(&cat.ID, &cat.Name, &cat.Description)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	err := r.db.QueryRow(`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING category_id`,
		cat.Name, cat.Description).Scan(&cat.ID)
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Update(id int, cat Category) (Category, error) {
	res, err := r.db.Exec(`UPDATE categories SET name = $1, description = $2 WHERE category_id = $3`,
		cat.Name, cat.Description, id)
	if err != nil {
		return Category{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Category{}, ErrNotFound
	}
	cat.ID = id
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
