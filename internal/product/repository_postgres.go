package product

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
	selectProductColumns = `"productId", name, description, "categoryId", "brandId", "imagePath", "totalQuantity", status, "createdOn", "updatedOn"`
	selectVariantColumns = `"variantId", "productId", sku, size, color, material, quantity, "initialPrice", "retailPrice", status, "createdOn", "updatedOn"`

	insertProductQuery = `
		INSERT INTO products (name, description, "categoryId", "brandId", "imagePath", "totalQuantity", status, "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
		RETURNING "productId"
	`
	insertVariantQuery = `
		INSERT INTO variants ("productId", sku, size, color, material, quantity, "initialPrice", "retailPrice", status, "createdOn", "updatedOn")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9, $10)
		RETURNING "variantId"
	`
	setVariantSKUQuery = `UPDATE variants SET sku = $1 WHERE "variantId" = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListProducts(page, limit int, search string) ([]Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	rows, err := r.db.Query(`
		SELECT `+selectProductColumns+`
		FROM products
		WHERE status AND name LIKE $1
		ORDER BY "productId"
		LIMIT $2 OFFSET $3`,
		"%"+search+"%", limit, page*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *PostgresRepository) CountProducts(search string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE status AND name LIKE $1`,
		"%"+search+"%").Scan(&count)
	return count, err
}

func (r *PostgresRepository) ListVariants(page, limit int, search string) ([]Variant, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	rows, err := r.db.Query(`
		SELECT v.`+variantColumnsAliased("v")+`
		FROM variants v
		JOIN products p ON p."productId" = v."productId"
		WHERE v.status AND (v.sku LIKE $1 OR p.name LIKE $1)
		ORDER BY v."variantId"
		LIMIT $2 OFFSET $3`,
		"%"+search+"%", limit, page*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := make([]Variant, 0)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

func (r *PostgresRepository) CountVariants(search string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM variants v
		JOIN products p ON p."productId" = v."productId"
		WHERE v.status AND (v.sku LIKE $1 OR p.name LIKE $1)`,
		"%"+search+"%").Scan(&count)
	return count, err
}

// variantPropertyColumns whitelists the property names callers may address;
// the values are the column names spliced into queries.
var variantPropertyColumns = map[string]string{
	"size":     "size",
	"color":    "color",
	"material": "material",
}

func (r *PostgresRepository) GetProductByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(`
		SELECT `+selectProductColumns+`
		FROM products
		WHERE "productId" = $1 AND status`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	rows, err := r.db.Query(`
		SELECT `+selectVariantColumns+`
		FROM variants
		WHERE "productId" = $1 AND status
		ORDER BY "variantId"`, id)
	if err != nil {
		return Product{}, err
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return Product{}, err
	}

	if p.Sizes, err = r.distinctVariantValues(id, "size"); err != nil {
		return Product{}, err
	}
	if p.Colors, err = r.distinctVariantValues(id, "color"); err != nil {
		return Product{}, err
	}
	if p.Materials, err = r.distinctVariantValues(id, "material"); err != nil {
		return Product{}, err
	}

	return p, nil
}

func (r *PostgresRepository) distinctVariantValues(productID int, column string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT `+column+`
		FROM variants
		WHERE "productId" = $1 AND status AND `+column+` <> ''
		ORDER BY `+column, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (r *PostgresRepository) GetVariant(productID, variantID int) (Variant, error) {
	v, err := scanVariant(r.db.QueryRow(`
		SELECT `+selectVariantColumns+`
		FROM variants
		WHERE "variantId" = $1 AND "productId" = $2 AND status`, variantID, productID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Variant{}, ErrVariantNotFound
		}
		return Variant{}, err
	}

	return v, nil
}

func (r *PostgresRepository) SKUExists(sku string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM variants WHERE sku = $1)`, sku).Scan(&exists)
	return exists, err
}

// CreateProduct inserts the product and all its variants in one transaction.
// Variants submitted without a SKU get a generated one derived from their id
// in a follow-up update inside the same transaction.
func (r *PostgresRepository) CreateProduct(p Product) (Product, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var productID int
	err = tx.QueryRow(
		insertProductQuery,
		p.Name,
		p.Description,
		p.CategoryID,
		p.BrandID,
		pq.Array(p.ImagePaths),
		p.TotalQuantity,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&productID)
	if err != nil {
		return Product{}, err
	}

	for _, v := range p.Variants {
		if err := insertVariant(tx, productID, v); err != nil {
			return Product{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Product{}, err
	}

	return r.GetProductByID(productID)
}

func insertVariant(tx *sql.Tx, productID int, v Variant) error {
	var variantID int
	err := tx.QueryRow(
		insertVariantQuery,
		productID,
		v.SKU,
		v.Size,
		v.Color,
		v.Material,
		v.Quantity,
		v.InitialPrice,
		v.RetailPrice,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&variantID)
	if err != nil {
		return err
	}

	if v.SKU == "" {
		sku := fmt.Sprintf("%s%05d", GeneratedSKUPrefix, variantID)
		if _, err := tx.Exec(setVariantSKUQuery, sku, variantID); err != nil {
			return err
		}
	}
	return nil
}

// CreateVariant adds a variant to an existing product and bumps the
// product's total quantity by the variant's stock, all in one transaction.
// The product row is locked first so concurrent stock mutations cannot race
// the total.
func (r *PostgresRepository) CreateVariant(productID int, v Variant) (Variant, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Variant{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRow(`SELECT status FROM products WHERE "productId" = $1 FOR UPDATE`, productID).Scan(&exists)
	if err == sql.ErrNoRows || (err == nil && !exists) {
		return Variant{}, ErrNotFound
	}
	if err != nil {
		return Variant{}, err
	}

	var variantID int
	err = tx.QueryRow(
		insertVariantQuery,
		productID,
		v.SKU,
		v.Size,
		v.Color,
		v.Material,
		v.Quantity,
		v.InitialPrice,
		v.RetailPrice,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&variantID)
	if err != nil {
		return Variant{}, err
	}

	if v.SKU == "" {
		v.SKU = fmt.Sprintf("%s%05d", GeneratedSKUPrefix, variantID)
		if _, err := tx.Exec(setVariantSKUQuery, v.SKU, variantID); err != nil {
			return Variant{}, err
		}
	}

	_, err = tx.Exec(`
		UPDATE products
		SET "totalQuantity" = "totalQuantity" + $1, "updatedOn" = $2
		WHERE "productId" = $3`,
		v.Quantity, v.UpdatedAt, productID)
	if err != nil {
		return Variant{}, err
	}

	if err := tx.Commit(); err != nil {
		return Variant{}, err
	}

	v.ID = variantID
	v.ProductID = productID
	v.Status = true
	return v, nil
}

// UpdateProduct rewrites the product header and the submitted variants in
// one transaction. The caller supplies TotalQuantity recomputed from the
// submitted variant quantities.
func (r *PostgresRepository) UpdateProduct(id int, p Product) (Product, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		UPDATE products
		SET name = $1,
			description = $2,
			"categoryId" = $3,
			"brandId" = $4,
			"imagePath" = $5,
			"totalQuantity" = $6,
			"updatedOn" = $7
		WHERE "productId" = $8 AND status`,
		p.Name, p.Description, p.CategoryID, p.BrandID, pq.Array(p.ImagePaths),
		p.TotalQuantity, p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}

	for _, v := range p.Variants {
		result, err := tx.Exec(`
			UPDATE variants
			SET sku = $1, size = $2, color = $3, material = $4,
				quantity = $5, "initialPrice" = $6, "retailPrice" = $7, "updatedOn" = $8
			WHERE "variantId" = $9 AND "productId" = $10 AND status`,
			v.SKU, v.Size, v.Color, v.Material,
			v.Quantity, v.InitialPrice, v.RetailPrice, p.UpdatedAt,
			v.ID, id)
		if err != nil {
			return Product{}, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return Product{}, err
		}
		if affected == 0 {
			return Product{}, ErrVariantNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return Product{}, err
	}

	return r.GetProductByID(id)
}

// DeleteProduct soft-deletes the product and all its variants.
func (r *PostgresRepository) DeleteProduct(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteProductTx(tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func deleteProductTx(tx *sql.Tx, id int) error {
	result, err := tx.Exec(`UPDATE products SET status = false WHERE "productId" = $1 AND status`, id)
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

	_, err = tx.Exec(`UPDATE variants SET status = false WHERE "productId" = $1`, id)
	return err
}

// DeleteVariant soft-deletes one variant and keeps the product total in
// sync. Deleting the last live variant deletes the whole product.
func (r *PostgresRepository) DeleteVariant(productID, variantID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var quantity int
	err = tx.QueryRow(`
		SELECT quantity FROM variants
		WHERE "variantId" = $1 AND "productId" = $2 AND status
		FOR UPDATE`, variantID, productID).Scan(&quantity)
	if err == sql.ErrNoRows {
		return ErrVariantNotFound
	}
	if err != nil {
		return err
	}

	var live int
	err = tx.QueryRow(`SELECT COUNT(*) FROM variants WHERE "productId" = $1 AND status`, productID).Scan(&live)
	if err != nil {
		return err
	}

	if live <= 1 {
		if err := deleteProductTx(tx, productID); err != nil {
			return err
		}
		return tx.Commit()
	}

	if _, err := tx.Exec(`UPDATE variants SET status = false WHERE "variantId" = $1`, variantID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		UPDATE products SET "totalQuantity" = "totalQuantity" - $1 WHERE "productId" = $2`,
		quantity, productID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteVariantsByProperty soft-deletes every live variant of the product
// whose size, color or material equals the given value. When that covers
// the whole live variant set, the product goes with them; otherwise the
// product total drops by the removed stock.
func (r *PostgresRepository) DeleteVariantsByProperty(productID int, property, value string) error {
	column, ok := variantPropertyColumns[property]
	if !ok {
		return ErrUnknownProperty
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var live bool
	err = tx.QueryRow(`SELECT status FROM products WHERE "productId" = $1 FOR UPDATE`, productID).Scan(&live)
	if err == sql.ErrNoRows || (err == nil && !live) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var matched, matchedQuantity int
	err = tx.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(quantity), 0)
		FROM variants
		WHERE "productId" = $1 AND status AND `+column+` = $2`,
		productID, value).Scan(&matched, &matchedQuantity)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrVariantNotFound
	}

	var liveCount int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM variants WHERE "productId" = $1 AND status`, productID).Scan(&liveCount); err != nil {
		return err
	}

	if matched >= liveCount {
		if err := deleteProductTx(tx, productID); err != nil {
			return err
		}
		return tx.Commit()
	}

	if _, err := tx.Exec(`
		UPDATE variants SET status = false
		WHERE "productId" = $1 AND status AND `+column+` = $2`,
		productID, value); err != nil {
		return err
	}
	_, err = tx.Exec(`
		UPDATE products SET "totalQuantity" = "totalQuantity" - $1 WHERE "productId" = $2`,
		matchedQuantity, productID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func variantColumnsAliased(alias string) string {
	return `"variantId", ` + alias + `."productId", sku, size, color, material, quantity, "initialPrice", "retailPrice", ` + alias + `.status, ` + alias + `."createdOn", ` + alias + `."updatedOn"`
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var description sql.NullString
	var images pq.StringArray
	var createdOn, updatedOn sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.CategoryID,
		&p.BrandID,
		&images,
		&p.TotalQuantity,
		&p.Status,
		&createdOn,
		&updatedOn,
	); err != nil {
		return Product{}, err
	}

	p.Description = description.String
	p.ImagePaths = images
	p.CreatedAt = createdOn.String
	p.UpdatedAt = updatedOn.String
	return p, nil
}

func scanVariant(scanner rowScanner) (Variant, error) {
	v := Variant{}
	var createdOn, updatedOn sql.NullString

	if err := scanner.Scan(
		&v.ID,
		&v.ProductID,
		&v.SKU,
		&v.Size,
		&v.Color,
		&v.Material,
		&v.Quantity,
		&v.InitialPrice,
		&v.RetailPrice,
		&v.Status,
		&createdOn,
		&updatedOn,
	); err != nil {
		return Variant{}, err
	}

	v.CreatedAt = createdOn.String
	v.UpdatedAt = updatedOn.String
	return v, nil
}
