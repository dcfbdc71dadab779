package product

// GeneratedSKUPrefix is reserved for server-assigned variant SKUs. Client
// supplied SKUs must not use it.
const GeneratedSKUPrefix = "PVN"

// Product aggregates its variants. TotalQuantity always equals the sum of
// live variant quantities and is maintained incrementally by every mutation
// path (variant create/update, order stock decrement) rather than recomputed
// on read.
type Product struct {
	ID            int       `json:"productId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CategoryID    int       `json:"categoryId"`
	BrandID       int       `json:"brandId"`
	ImagePaths    []string  `json:"imagePath,omitempty"`
	TotalQuantity int       `json:"totalQuantity"`
	Status        bool      `json:"status"`
	Variants      []Variant `json:"variants,omitempty"`

	// distinct live variant property values, populated on detail reads
	Sizes     []string `json:"sizes,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Materials []string `json:"materials,omitempty"`

	CreatedAt string `json:"createdOn,omitempty"`
	UpdatedAt string `json:"updatedOn,omitempty"`
}

// Variant is a sellable configuration of a product with its own SKU and
// stock count. Quantity never goes below zero.
type Variant struct {
	ID           int     `json:"variantId"`
	ProductID    int     `json:"productId"`
	SKU          string  `json:"sku"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Material     string  `json:"material"`
	Quantity     int     `json:"quantity"`
	InitialPrice float64 `json:"initialPrice"`
	RetailPrice  float64 `json:"retailPrice"`
	Status       bool    `json:"status"`
	CreatedAt    string  `json:"createdOn,omitempty"`
	UpdatedAt    string  `json:"updatedOn,omitempty"`
}

// propertyKey identifies a size/color/material combination, which must be
// unique within a product.
func (v Variant) propertyKey() string {
	return v.Size + "-" + v.Color + "-" + v.Material
}
