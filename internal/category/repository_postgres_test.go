package category

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"category_id", "name", "description"}).
		AddRow(1, "Dogs", "canine supplies").
		AddRow(2, "Cats", "feline supplies")
	mock.ExpectQuery("SELECT category_id, name, description FROM categories").WillReturnRows(rows)

	cats, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Name != "Dogs" {
		t.Errorf("unexpected category name %q", cats[0].Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT category_id, name, description FROM categories WHERE").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name", "description"}))

	if _, err := repo.GetByID(404); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE categories SET").
		WithArgs("Birds", "avian supplies", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	cat, err := repo.Update(3, Category{Name: "Birds", Description: "avian supplies"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cat.ID != 3 {
		t.Errorf("unexpected id %d", cat.ID)
	}

	mock.ExpectExec("DELETE FROM categories").
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(404); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
