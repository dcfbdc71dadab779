package brand

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const selectBrandColumns = `"brandId", name, code, description, "createdOn", "updatedOn"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(page, limit int, search string) ([]Brand, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	rows, err := r.db.Query(`
		SELECT `+selectBrandColumns+`
		FROM brands
		WHERE name LIKE $1
		ORDER BY "brandId"
		LIMIT $2 OFFSET $3`,
		"%"+search+"%", limit, page*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := make([]Brand, 0)
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}

	return brands, rows.Err()
}

func (r *PostgresRepository) Count(search string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM brands WHERE name LIKE $1`, "%"+search+"%").Scan(&count)
	return count, err
}

func (r *PostgresRepository) GetByID(id int) (Brand, error) {
	b, err := scanBrand(r.db.QueryRow(`
		SELECT `+selectBrandColumns+`
		FROM brands
		WHERE "brandId" = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Brand{}, ErrNotFound
		}
		return Brand{}, err
	}

	return b, nil
}

func (r *PostgresRepository) Create(b Brand) (Brand, error) {
	err := r.db.QueryRow(`
		INSERT INTO brands (name, code, description, "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING "brandId"`,
		b.Name, b.Code, b.Description, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		return Brand{}, err
	}

	return b, nil
}

func (r *PostgresRepository) Update(id int, b Brand) (Brand, error) {
	result, err := r.db.Exec(`
		UPDATE brands
		SET name = $1, code = $2, description = $3, "updatedOn" = $4
		WHERE "brandId" = $5`,
		b.Name, b.Code, b.Description, b.UpdatedAt, id)
	if err != nil {
		return Brand{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Brand{}, err
	}
	if affected == 0 {
		return Brand{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM brands WHERE "brandId" = $1`, id)
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

func scanBrand(scanner rowScanner) (Brand, error) {
	b := Brand{}
	var code, description, createdOn, updatedOn sql.NullString

	if err := scanner.Scan(&b.ID, &b.Name, &code, &description, &createdOn, &updatedOn); err != nil {
		return Brand{}, err
	}

	b.Code = code.String
	b.Description = description.String
	b.CreatedAt = createdOn.String
	b.UpdatedAt = updatedOn.String
	return b, nil
}
