package product

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrSKUExists        = errors.New("sku already exists")
	ErrReservedSKU      = errors.New("sku uses the reserved generated prefix")
	ErrDuplicateVariant = errors.New("duplicate variant properties")
	ErrUnknownProperty  = errors.New("unknown variant property")
)

type Repository interface {
	ListProducts(page, limit int, search string) ([]Product, error)
	CountProducts(search string) (int, error)
	ListVariants(page, limit int, search string) ([]Variant, error)
	CountVariants(search string) (int, error)
	GetProductByID(id int) (Product, error)
	GetVariant(productID, variantID int) (Variant, error)
	SKUExists(sku string) (bool, error)
	CreateProduct(p Product) (Product, error)
	CreateVariant(productID int, v Variant) (Variant, error)
	UpdateProduct(id int, p Product) (Product, error)
	DeleteProduct(id int) error
	DeleteVariant(productID, variantID int) error
	DeleteVariantsByProperty(productID int, property, value string) error
}
