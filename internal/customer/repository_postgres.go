package customer

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	selectCustomerColumns = `"customerId", code, name, "phoneNumber", email, address, "numberOfOrder", "totalExpense", "createdOn", "updatedOn"`

	getCustomerByIDQuery = `
		SELECT "customerId", code, name, "phoneNumber", email, address, "numberOfOrder", "totalExpense", "createdOn", "updatedOn"
		FROM customers
		WHERE "customerId" = $1
	`
	getCustomerByPhoneQuery = `
		SELECT "customerId", code, name, "phoneNumber", email, address, "numberOfOrder", "totalExpense", "createdOn", "updatedOn"
		FROM customers
		WHERE "phoneNumber" = $1
	`
	insertCustomerQuery = `
		INSERT INTO customers (name, "phoneNumber", email, address, "numberOfOrder", "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		RETURNING "customerId"
	`
	setCustomerCodeQuery = `UPDATE customers SET code = $1 WHERE "customerId" = $2`
	updateCustomerQuery  = `
		UPDATE customers
		SET name = $1,
			"phoneNumber" = $2,
			email = $3,
			address = $4,
			"updatedOn" = $5
		WHERE "customerId" = $6
	`
	deleteCustomerQuery = `DELETE FROM customers WHERE "customerId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(params ListParams) ([]Customer, error) {
	params = params.normalized()

	args := []any{params.Limit, params.Page * params.Limit}
	where := ""
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = `WHERE (name LIKE $3 OR "phoneNumber" LIKE $3)`
	}
	query := fmt.Sprintf(`
		SELECT %s FROM customers %s
		ORDER BY "customerId"
		LIMIT $1 OFFSET $2`, selectCustomerColumns, where)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func (r *PostgresRepository) Count(params ListParams) (int, error) {
	params = params.normalized()

	var count int
	var err error
	if params.Search != "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM customers WHERE (name LIKE $1 OR "phoneNumber" LIKE $1)`,
			"%"+params.Search+"%").Scan(&count)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count)
	}
	return count, err
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	customer, err := scanCustomer(r.db.QueryRow(getCustomerByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}

	return customer, nil
}

func (r *PostgresRepository) GetByPhoneNumber(phone string) (Customer, error) {
	customer, err := scanCustomer(r.db.QueryRow(getCustomerByPhoneQuery, phone))
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}

	return customer, nil
}

// Create inserts the customer and assigns its human-readable code from the
// generated id in a follow-up update inside the same transaction, the same
// way order codes are assigned.
func (r *PostgresRepository) Create(customer Customer) (Customer, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Customer{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	err = tx.QueryRow(
		insertCustomerQuery,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Customer{}, err
	}

	code := fmt.Sprintf("KH%05d", id)
	if _, err := tx.Exec(setCustomerCodeQuery, code, id); err != nil {
		return Customer{}, err
	}

	if err := tx.Commit(); err != nil {
		return Customer{}, err
	}

	customer.ID = id
	customer.Code = code
	customer.NumberOfOrders = 0
	return customer, nil
}

func (r *PostgresRepository) Update(id int, customerUpdate Customer) (Customer, error) {
	result, err := r.db.Exec(
		updateCustomerQuery,
		customerUpdate.Name,
		customerUpdate.Phone,
		customerUpdate.Email,
		customerUpdate.Address,
		customerUpdate.UpdatedAt,
		id,
	)
	if err != nil {
		return Customer{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Customer{}, err
	}
	if affected == 0 {
		return Customer{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteCustomerQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanCustomer(scanner rowScanner) (Customer, error) {
	customer := Customer{}
	var code sql.NullString
	var email sql.NullString
	var address sql.NullString
	var totalExpense sql.NullFloat64
	var createdOn sql.NullString
	var updatedOn sql.NullString

	if err := scanner.Scan(
		&customer.ID,
		&code,
		&customer.Name,
		&customer.Phone,
		&email,
		&address,
		&customer.NumberOfOrders,
		&totalExpense,
		&createdOn,
		&updatedOn,
	); err != nil {
		return Customer{}, err
	}

	if code.Valid {
		customer.Code = code.String
	}
	if email.Valid {
		customer.Email = email.String
	}
	if address.Valid {
		customer.Address = address.String
	}
	if totalExpense.Valid {
		customer.TotalExpense = &totalExpense.Float64
	}
	if createdOn.Valid {
		customer.CreatedAt = createdOn.String
	}
	if updatedOn.Valid {
		customer.UpdatedAt = updatedOn.String
	}

	return customer, nil
}
