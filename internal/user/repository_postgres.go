package user

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	selectUserColumns = `"userId", name, email, password, "phoneNumber", roles, "createdOn", "updatedOn"`

	getUserByIDQuery = `
		SELECT "userId", name, email, password, "phoneNumber", roles, "createdOn", "updatedOn"
		FROM users
		WHERE "userId" = $1
	`
	getUserByEmailQuery = `
		SELECT "userId", name, email, password, "phoneNumber", roles, "createdOn", "updatedOn"
		FROM users
		WHERE email = $1
	`
	getUserByPhoneQuery = `
		SELECT "userId", name, email, password, "phoneNumber", roles, "createdOn", "updatedOn"
		FROM users
		WHERE "phoneNumber" = $1
	`

	insertUserQuery = `
		INSERT INTO users (name, email, password, "phoneNumber", roles, "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "userId"
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			email = $2,
			"phoneNumber" = $3,
			roles = $4,
			"updatedOn" = $5
		WHERE "userId" = $6
	`
	updateUserPasswordQuery = `UPDATE users SET password = $1, "updatedOn" = now()::text WHERE "userId" = $2`
	deleteUserQuery         = `DELETE FROM users WHERE "userId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// listFilter builds the WHERE clause shared by List and Count. Sort and
// order values are whitelisted in ListParams.normalized, never interpolated
// from raw input.
func listFilter(params ListParams) (string, []any) {
	where := ""
	args := []any{}
	if params.Role != "" {
		args = append(args, params.Role)
		where = fmt.Sprintf(`WHERE $%d = ANY(roles)`, len(args))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		clause := fmt.Sprintf(`(name LIKE $%d OR "phoneNumber" LIKE $%d)`, len(args), len(args))
		if where == "" {
			where = "WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	return where, args
}

func sortColumn(sortKey string) string {
	switch sortKey {
	case "email":
		return "email"
	case "created_on":
		return `"createdOn"`
	default:
		return "name"
	}
}

func (r *PostgresRepository) List(params ListParams) ([]User, error) {
	params = params.normalized()
	where, args := listFilter(params)

	order := "ASC"
	if params.Order == "desc" {
		order = "DESC"
	}
	args = append(args, params.Limit, params.Page*params.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM users %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		selectUserColumns, where, sortColumn(params.Sort), order, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) Count(params ListParams) (int, error) {
	where, args := listFilter(params.normalized())

	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users `+where, args...).Scan(&count)
	return count, err
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) GetByPhoneNumber(phone string) (User, error) {
	return r.getOne(getUserByPhoneQuery, phone)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		user.Name,
		user.Email,
		user.Password,
		user.Phone,
		pq.Array(user.Roles),
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	user.ID = id
	return user, nil
}

func (r *PostgresRepository) Update(id int, userUpdate User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		userUpdate.Name,
		userUpdate.Email,
		userUpdate.Phone,
		pq.Array(userUpdate.Roles),
		userUpdate.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePassword(id int, hashed string) error {
	result, err := r.db.Exec(updateUserPasswordQuery, hashed, id)
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

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
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

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var roles pq.StringArray
	var createdOn sql.NullString
	var updatedOn sql.NullString

	if err := scanner.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Phone,
		&roles,
		&createdOn,
		&updatedOn,
	); err != nil {
		return User{}, err
	}

	user.Roles = roles
	if createdOn.Valid {
		user.CreatedAt = createdOn.String
	}
	if updatedOn.Valid {
		user.UpdatedAt = updatedOn.String
	}

	return user, nil
}
