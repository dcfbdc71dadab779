package order

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows(ord Order) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"orderId", "code", "customerId", "creatorId", "totalQuantity", "totalPayment", "cashReceive", "cashRepay", "paymentType", "note", "createdOn"}).
		AddRow(ord.ID, ord.Code, ord.CustomerID, ord.CreatorID, ord.TotalQuantity, ord.TotalPayment, ord.CashReceive, ord.CashRepay, ord.PaymentType, ord.Note, ord.CreatedOn)
}

func TestCreate_CommitsWholeWorkflow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "customerId" FROM customers`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"customerId"}).AddRow(2))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(2, 1, 3, 150.0, 200.0, 50.0, "CASH", "").
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "createdOn"}).AddRow(42, now))

	// single line item: lock stock, write detail, decrement variant and product
	mock.ExpectQuery(`SELECT quantity, "productId"`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "productId"}).AddRow(10, 4))
	mock.ExpectExec(`INSERT INTO order_details`).WithArgs(42, 7, 3, 150.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE variants SET quantity`).WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE products SET "totalQuantity"`).WithArgs(3, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`UPDATE customers`).WithArgs(150.0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET code`).WithArgs("SON00042", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// read-back after commit
	mock.ExpectQuery(`FROM orders`).WithArgs(42).
		WillReturnRows(orderRows(Order{ID: 42, Code: "SON00042", CustomerID: 2, CreatorID: 1, TotalQuantity: 3, TotalPayment: 150, CashReceive: 200, CashRepay: 50, PaymentType: "CASH", CreatedOn: now}))
	mock.ExpectQuery(`FROM order_details`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"orderDetailId", "orderId", "variantId", "quantity", "subTotal"}).
			AddRow(1, 42, 7, 3, 150.0))

	created, err := repo.Create(CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: 3,
		TotalPayment:  150,
		CashReceive:   200,
		CashRepay:     50,
		PaymentType:   "CASH",
		LineItems:     []LineItemRequest{{VariantID: 7, Quantity: 3, SubTotal: 150}},
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if created.Code != "SON00042" {
		t.Errorf("expected code SON00042, got %q", created.Code)
	}
	if len(created.Details) != 1 || created.Details[0].VariantID != 7 {
		t.Errorf("unexpected details %+v", created.Details)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_InsufficientStockRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "customerId" FROM customers`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"customerId"}).AddRow(2))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(2, 1, 5, 500.0, 500.0, 0.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "createdOn"}).AddRow(43, time.Now()))
	mock.ExpectQuery(`SELECT quantity, "productId"`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "productId"}).AddRow(2, 4))
	mock.ExpectRollback()

	_, err = repo.Create(CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: 5,
		TotalPayment:  500,
		CashReceive:   500,
		LineItems:     []LineItemRequest{{VariantID: 7, Quantity: 5, SubTotal: 500}},
	})
	if err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_UnknownVariantRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "customerId" FROM customers`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"customerId"}).AddRow(2))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(2, 1, 1, 50.0, 50.0, 0.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "createdOn"}).AddRow(44, time.Now()))
	mock.ExpectQuery(`SELECT quantity, "productId"`).WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "productId"}))
	mock.ExpectRollback()

	_, err = repo.Create(CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: 1,
		TotalPayment:  50,
		CashReceive:   50,
		LineItems:     []LineItemRequest{{VariantID: 999, Quantity: 1, SubTotal: 50}},
	})
	if err != ErrVariantNotFound {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_NegativeQuantityCheckedAfterVariantLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// a known variant with a negative quantity is a quantity problem
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "customerId" FROM customers`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"customerId"}).AddRow(2))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(2, 1, -1, 0.0, 0.0, 0.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "createdOn"}).AddRow(45, time.Now()))
	mock.ExpectQuery(`SELECT quantity, "productId"`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "productId"}).AddRow(10, 4))
	mock.ExpectRollback()

	_, err = repo.Create(CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: -1,
		LineItems:     []LineItemRequest{{VariantID: 7, Quantity: -1}},
	})
	if err != ErrNegativeQuantity {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}

	// an unknown variant is reported as missing even when its requested
	// quantity is also negative
	db2, mock2, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db2.Close()
	repo2 := NewPostgresRepository(db2)

	mock2.ExpectBegin()
	mock2.ExpectQuery(`SELECT "customerId" FROM customers`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"customerId"}).AddRow(2))
	mock2.ExpectQuery(`SELECT EXISTS`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock2.ExpectQuery(`INSERT INTO orders`).
		WithArgs(2, 1, -1, 0.0, 0.0, 0.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "createdOn"}).AddRow(46, time.Now()))
	mock2.ExpectQuery(`SELECT quantity, "productId"`).WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "productId"}))
	mock2.ExpectRollback()

	_, err = repo2.Create(CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: -1,
		LineItems:     []LineItemRequest{{VariantID: 999, Quantity: -1}},
	})
	if err != ErrVariantNotFound {
		t.Fatalf("expected ErrVariantNotFound for an unknown variant, got %v", err)
	}

	if err := mock2.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`FROM orders`).WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"orderId", "code", "customerId", "creatorId", "totalQuantity", "totalPayment", "cashReceive", "cashRepay", "paymentType", "note", "createdOn"}))

	if _, err := repo.GetByID(9); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFormatCode(t *testing.T) {
	cases := map[int]string{
		1:      "SON00001",
		42:     "SON00042",
		99999:  "SON99999",
		123456: "SON123456",
	}
	for id, want := range cases {
		if got := FormatCode(id); got != want {
			t.Errorf("FormatCode(%d) = %q, want %q", id, got, want)
		}
	}
}
