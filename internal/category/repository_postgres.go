package category

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const selectCategoryColumns = `"categoryId", name, code, description, "createdOn", "updatedOn"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(page, limit int, search string) ([]Category, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	rows, err := r.db.Query(`
		SELECT `+selectCategoryColumns+`
		FROM categories
		WHERE name LIKE $1
		ORDER BY "categoryId"
		LIMIT $2 OFFSET $3`,
		"%"+search+"%", limit, page*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) Count(search string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE name LIKE $1`, "%"+search+"%").Scan(&count)
	return count, err
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	cat, err := scanCategory(r.db.QueryRow(`
		SELECT `+selectCategoryColumns+`
		FROM categories
		WHERE "categoryId" = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}

	return cat, nil
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	err := r.db.QueryRow(`
		INSERT INTO categories (name, code, description, "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING "categoryId"`,
		cat.Name, cat.Code, cat.Description, cat.CreatedAt, cat.UpdatedAt).Scan(&cat.ID)
	if err != nil {
		return Category{}, err
	}

	return cat, nil
}

func (r *PostgresRepository) Update(id int, cat Category) (Category, error) {
	result, err := r.db.Exec(`
		UPDATE categories
		SET name = $1, code = $2, description = $3, "updatedOn" = $4
		WHERE "categoryId" = $5`,
		cat.Name, cat.Code, cat.Description, cat.UpdatedAt, id)
	if err != nil {
		return Category{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Category{}, err
	}
	if affected == 0 {
		return Category{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE "categoryId" = $1`, id)
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

func scanCategory(scanner rowScanner) (Category, error) {
	cat := Category{}
	var code, description, createdOn, updatedOn sql.NullString

	if err := scanner.Scan(&cat.ID, &cat.Name, &code, &description, &createdOn, &updatedOn); err != nil {
		return Category{}, err
	}

	cat.Code = code.String
	cat.Description = description.String
	cat.CreatedAt = createdOn.String
	cat.UpdatedAt = updatedOn.String
	return cat, nil
}
