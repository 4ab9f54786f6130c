package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreate_CommitsHeaderAndLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, price FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).
			AddRow(7, 19.99).
			AddRow(3, 49.99))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("Jane Doe", sqlmock.AnyArg(), "Pendiente", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 7, 2, 19.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 3, 1, 49.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lines := []Line{
		{ProductID: 7, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}
	id, err := repo.Create(context.Background(), "Jane Doe", lines, 89.97)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if id != 42 {
		t.Fatalf("expected order id 42, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RollsBackWhenLineInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, price FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).
			AddRow(7, 19.99).
			AddRow(3, 49.99))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 7, 2, 19.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 3, 1, 49.99).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	lines := []Line{
		{ProductID: 7, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}
	if _, err := repo.Create(context.Background(), "Jane Doe", lines, 89.97); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RejectsTotalMismatchBeforeWriting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, price FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(7, 19.99))
	mock.ExpectRollback()

	lines := []Line{{ProductID: 7, Quantity: 2}}
	_, err = repo.Create(context.Background(), "Jane Doe", lines, 10.00)
	if !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RejectsUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, price FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}))
	mock.ExpectRollback()

	lines := []Line{{ProductID: 999, Quantity: 1}}
	_, err = repo.Create(context.Background(), "Jane Doe", lines, 19.99)
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RollsBackOnShortStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, price FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(7, 19.99))
	// stock guard affects zero rows
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(5, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	lines := []Line{{ProductID: 7, Quantity: 5}}
	_, err = repo.Create(context.Background(), "Jane Doe", lines, 99.95)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListLines_OrderMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.ListLines(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListLines_JoinsProductAndKeepsInsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Pendiente"))
	mock.ExpectQuery("FROM order_items oi").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"name", "quantity", "unit_price", "image_url"}).
			AddRow("T-Shirt", 2, 19.99, "https://via.placeholder.com/150").
			AddRow("Jeans", 1, 49.99, "https://via.placeholder.com/150"))

	lines, err := repo.ListLines(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "T-Shirt" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if lines[1].Name != "Jeans" || lines[1].Quantity != 1 {
		t.Fatalf("unexpected second line %+v", lines[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_name", "total", "status", "created_at"}).
			AddRow(2, "Jane Doe", 89.97, "Pendiente", sampleTime(t, "2025-11-09T10:00:00Z")).
			AddRow(1, "Juan Pérez", 49.99, "Enviado", sampleTime(t, "2025-11-08T10:00:00Z")))

	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != 2 || orders[0].CustomerName != "Jane Doe" || orders[0].Status != StatusPending {
		t.Fatalf("unexpected first order %+v", orders[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_NoRowAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("Enviado", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 99, StatusShipped); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("Procesando", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 5, StatusProcessing); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
