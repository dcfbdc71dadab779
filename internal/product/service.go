package product

import (
	"strings"

	"github.com/minhquangvu/store-backoffice/internal/brand"
	"github.com/minhquangvu/store-backoffice/internal/category"
)

var (
	ErrCategoryNotFound = category.ErrNotFound
	ErrBrandNotFound    = brand.ErrNotFound
)

type categoryGetter interface {
	GetByID(id int) (category.Category, error)
}

type brandGetter interface {
	GetByID(id int) (brand.Brand, error)
}

// ServiceInterface is the product surface other packages depend on.
type ServiceInterface interface {
	ListProducts(page, limit int, search string) ([]Product, error)
	CountProducts(search string) (int, error)
	ListVariants(page, limit int, search string) ([]Variant, error)
	CountVariants(search string) (int, error)
	GetByID(id int) (Product, error)
	GetVariant(productID, variantID int) (Variant, error)
	Create(p Product) (Product, error)
	AddVariant(productID int, v Variant) (Variant, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	DeleteVariant(productID, variantID int) error
	DeleteVariantsByProperty(productID int, property, value string) error
}

type Service struct {
	repo       Repository
	categories categoryGetter
	brands     brandGetter
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, categories categoryGetter, brands brandGetter) *Service {
	return &Service{repo: repo, categories: categories, brands: brands}
}

func (s *Service) ListProducts(page, limit int, search string) ([]Product, error) {
	return s.repo.ListProducts(page, limit, search)
}

func (s *Service) CountProducts(search string) (int, error) {
	return s.repo.CountProducts(search)
}

func (s *Service) ListVariants(page, limit int, search string) ([]Variant, error) {
	return s.repo.ListVariants(page, limit, search)
}

func (s *Service) CountVariants(search string) (int, error) {
	return s.repo.CountVariants(search)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetProductByID(id)
}

func (s *Service) GetVariant(productID, variantID int) (Variant, error) {
	return s.repo.GetVariant(productID, variantID)
}

// Create validates the category, the brand and every submitted variant
// (SKU rules plus size/color/material uniqueness), then persists the
// product with TotalQuantity derived from its variants.
func (s *Service) Create(p Product) (Product, error) {
	if _, err := s.categories.GetByID(p.CategoryID); err != nil {
		return Product{}, err
	}
	if _, err := s.brands.GetByID(p.BrandID); err != nil {
		return Product{}, err
	}

	if err := s.checkVariantSet(p.Variants); err != nil {
		return Product{}, err
	}

	total := 0
	for _, v := range p.Variants {
		total += v.Quantity
	}
	p.TotalQuantity = total

	return s.repo.CreateProduct(p)
}

// AddVariant appends a variant to an existing product. The product's total
// quantity grows by the variant's stock.
func (s *Service) AddVariant(productID int, v Variant) (Variant, error) {
	existing, err := s.repo.GetProductByID(productID)
	if err != nil {
		return Variant{}, err
	}

	if err := s.checkSKU(v.SKU); err != nil {
		return Variant{}, err
	}
	key := v.propertyKey()
	for _, ev := range existing.Variants {
		if ev.propertyKey() == key {
			return Variant{}, ErrDuplicateVariant
		}
	}

	return s.repo.CreateVariant(productID, v)
}

// Update rewrites the product header and its variants. TotalQuantity is
// recomputed from the submitted variant quantities; SKU changes are
// re-validated against the reserved prefix and existing SKUs.
func (s *Service) Update(id int, p Product) (Product, error) {
	existing, err := s.repo.GetProductByID(id)
	if err != nil {
		return Product{}, err
	}
	if _, err := s.categories.GetByID(p.CategoryID); err != nil {
		return Product{}, err
	}
	if _, err := s.brands.GetByID(p.BrandID); err != nil {
		return Product{}, err
	}

	currentSKU := make(map[int]string, len(existing.Variants))
	for _, v := range existing.Variants {
		currentSKU[v.ID] = v.SKU
	}

	seen := make(map[string]struct{}, len(p.Variants))
	total := 0
	for _, v := range p.Variants {
		key := v.propertyKey()
		if _, dup := seen[key]; dup {
			return Product{}, ErrDuplicateVariant
		}
		seen[key] = struct{}{}
		total += v.Quantity

		// only re-validate SKUs that actually change
		if v.SKU != "" && v.SKU != currentSKU[v.ID] {
			if err := s.checkSKU(v.SKU); err != nil {
				return Product{}, err
			}
		}
	}
	p.TotalQuantity = total

	return s.repo.UpdateProduct(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.DeleteProduct(id)
}

func (s *Service) DeleteVariant(productID, variantID int) error {
	return s.repo.DeleteVariant(productID, variantID)
}

// DeleteVariantsByProperty removes every variant sharing a size, color or
// material value in one call.
func (s *Service) DeleteVariantsByProperty(productID int, property, value string) error {
	return s.repo.DeleteVariantsByProperty(productID, property, value)
}

func (s *Service) checkVariantSet(variants []Variant) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if err := s.checkSKU(v.SKU); err != nil {
			return err
		}
		key := v.propertyKey()
		if _, dup := seen[key]; dup {
			return ErrDuplicateVariant
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *Service) checkSKU(sku string) error {
	if sku == "" {
		return nil
	}
	if strings.HasPrefix(sku, GeneratedSKUPrefix) {
		return ErrReservedSKU
	}
	exists, err := s.repo.SKUExists(sku)
	if err != nil {
		return err
	}
	if exists {
		return ErrSKUExists
	}
	return nil
}
