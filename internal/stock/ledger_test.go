package stock

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReserve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Reserve(db, 7, 2); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReserveInsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// the conditional debit touches no row, then the follow-up read finds
	// the product with too little stock
	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT stock_quantity FROM products").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(1))

	if err := Reserve(db, 7, 2); err != ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReserveUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs(999, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT stock_quantity FROM products").
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

	if err := Reserve(db, 999, 1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Release(db, 7, 2); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReleaseUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs(999, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Release(db, 999, 2); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT stock_quantity FROM products").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(3))

	info, err := Availability(db, 7)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !info.Exists || info.Stock != 3 || !info.IsLowStock || info.IsOutOfStock {
		t.Errorf("unexpected info: %+v", info)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAvailabilityUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT stock_quantity FROM products").
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

	info, err := Availability(db, 999)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if info.Exists {
		t.Errorf("expected missing product, got %+v", info)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAvailabilityOutOfStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT stock_quantity FROM products").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(0))

	info, err := Availability(db, 7)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !info.Exists || !info.IsOutOfStock || !info.IsLowStock {
		t.Errorf("unexpected info: %+v", info)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
