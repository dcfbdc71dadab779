package order

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	selectOrderColumns = `"orderId", code, "customerId", "creatorId", "totalQuantity", "totalPayment", "cashReceive", "cashRepay", "paymentType", note, "createdOn"`

	insertOrderQuery = `
		INSERT INTO orders ("customerId", "creatorId", "totalQuantity", "totalPayment", "cashReceive", "cashRepay", "paymentType", note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING "orderId", "createdOn"
	`
	setOrderCodeQuery = `UPDATE orders SET code = $1 WHERE "orderId" = $2`

	insertOrderDetailQuery = `
		INSERT INTO order_details ("orderId", "variantId", quantity, "subTotal")
		VALUES ($1, $2, $3, $4)
	`
	lockVariantQuery = `
		SELECT quantity, "productId"
		FROM variants
		WHERE "variantId" = $1 AND status
		FOR UPDATE
	`
	decrementVariantQuery = `UPDATE variants SET quantity = quantity - $1 WHERE "variantId" = $2`
	decrementProductQuery = `UPDATE products SET "totalQuantity" = "totalQuantity" - $1 WHERE "productId" = $2`

	lockCustomerQuery       = `SELECT "customerId" FROM customers WHERE "customerId" = $1 FOR UPDATE`
	accumulateCustomerQuery = `
		UPDATE customers
		SET "numberOfOrder" = "numberOfOrder" + 1,
			"totalExpense" = COALESCE("totalExpense", 0) + $1
		WHERE "customerId" = $2
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the order header, its details, the stock decrements, the
// customer accumulation and the code assignment as a single transaction.
// Customer and variant rows are locked up front so concurrent orders for the
// same variant cannot both pass the stock check.
func (r *PostgresRepository) Create(req CreateOrderRequest) (OrderDetailResponse, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return OrderDetailResponse{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var customerID int
	if err := tx.QueryRow(lockCustomerQuery, req.CustomerID).Scan(&customerID); err != nil {
		if err == sql.ErrNoRows {
			return OrderDetailResponse{}, ErrCustomerNotFound
		}
		return OrderDetailResponse{}, err
	}

	var creatorExists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE "userId" = $1)`, req.CreatorID).Scan(&creatorExists); err != nil {
		return OrderDetailResponse{}, err
	}
	if !creatorExists {
		return OrderDetailResponse{}, ErrCreatorNotFound
	}

	var orderID int
	var createdOn time.Time
	err = tx.QueryRow(
		insertOrderQuery,
		req.CustomerID,
		req.CreatorID,
		req.TotalQuantity,
		req.TotalPayment,
		req.CashReceive,
		req.CashRepay,
		req.PaymentType,
		req.Note,
	).Scan(&orderID, &createdOn)
	if err != nil {
		return OrderDetailResponse{}, err
	}

	// line items are applied in the order supplied by the caller
	for _, item := range req.LineItems {
		var stock, productID int
		if err := tx.QueryRow(lockVariantQuery, item.VariantID).Scan(&stock, &productID); err != nil {
			if err == sql.ErrNoRows {
				return OrderDetailResponse{}, ErrVariantNotFound
			}
			return OrderDetailResponse{}, err
		}
		if item.Quantity < 0 {
			return OrderDetailResponse{}, ErrNegativeQuantity
		}
		if item.Quantity > stock {
			return OrderDetailResponse{}, ErrInsufficientStock
		}

		if _, err := tx.Exec(insertOrderDetailQuery, orderID, item.VariantID, item.Quantity, item.SubTotal); err != nil {
			return OrderDetailResponse{}, err
		}
		if _, err := tx.Exec(decrementVariantQuery, item.Quantity, item.VariantID); err != nil {
			return OrderDetailResponse{}, err
		}
		if _, err := tx.Exec(decrementProductQuery, item.Quantity, productID); err != nil {
			return OrderDetailResponse{}, err
		}
	}

	if _, err := tx.Exec(accumulateCustomerQuery, req.TotalPayment, req.CustomerID); err != nil {
		return OrderDetailResponse{}, err
	}

	// the code needs the generated id, hence a second write in the same tx
	if _, err := tx.Exec(setOrderCodeQuery, FormatCode(orderID), orderID); err != nil {
		return OrderDetailResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OrderDetailResponse{}, err
	}

	return r.GetByID(orderID)
}

func (r *PostgresRepository) GetByID(id int) (OrderDetailResponse, error) {
	ord, err := scanOrder(r.db.QueryRow(`
		SELECT `+selectOrderColumns+`
		FROM orders
		WHERE "orderId" = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return OrderDetailResponse{}, ErrOrderNotFound
		}
		return OrderDetailResponse{}, err
	}

	rows, err := r.db.Query(`
		SELECT "orderDetailId", "orderId", "variantId", quantity, "subTotal"
		FROM order_details
		WHERE "orderId" = $1
		ORDER BY "orderDetailId"`, id)
	if err != nil {
		return OrderDetailResponse{}, err
	}
	defer rows.Close()

	details := make([]OrderDetail, 0)
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.VariantID, &d.Quantity, &d.SubTotal); err != nil {
			return OrderDetailResponse{}, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return OrderDetailResponse{}, err
	}

	return OrderDetailResponse{Order: ord, Details: details}, nil
}

func (r *PostgresRepository) ListByDateAndCode(start, end time.Time, code string) ([]Order, error) {
	rows, err := r.db.Query(`
		SELECT `+selectOrderColumns+`
		FROM orders
		WHERE "createdOn" BETWEEN $1 AND $2 AND code LIKE $3
		ORDER BY "createdOn" DESC`,
		start, end, "%"+code+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *PostgresRepository) ListCreatedOn(day time.Time, page, limit int) ([]Order, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM orders
		WHERE "createdOn" >= $1 AND "createdOn" < $2`, dayStart, dayEnd).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT `+selectOrderColumns+`
		FROM orders
		WHERE "createdOn" >= $1 AND "createdOn" < $2
		ORDER BY "createdOn" DESC
		LIMIT $3 OFFSET $4`,
		dayStart, dayEnd, limit, page*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func scanOrder(scanner rowScanner) (Order, error) {
	ord := Order{}
	var code, paymentType, note sql.NullString

	if err := scanner.Scan(
		&ord.ID,
		&code,
		&ord.CustomerID,
		&ord.CreatorID,
		&ord.TotalQuantity,
		&ord.TotalPayment,
		&ord.CashReceive,
		&ord.CashRepay,
		&paymentType,
		&note,
		&ord.CreatedOn,
	); err != nil {
		return Order{}, err
	}

	ord.Code = code.String
	ord.PaymentType = paymentType.String
	ord.Note = note.String
	return ord, nil
}
