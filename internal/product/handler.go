package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service ServiceInterface
}

type variantRequest struct {
	ID           int     `json:"variantId"`
	SKU          string  `json:"sku"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Material     string  `json:"material"`
	Quantity     int     `json:"quantity"`
	InitialPrice float64 `json:"initialPrice"`
	RetailPrice  float64 `json:"retailPrice"`
}

type productRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  int              `json:"categoryId"`
	BrandID     int              `json:"brandId"`
	ImagePaths  []string         `json:"imagePath"`
	Variants    []variantRequest `json:"variants"`
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Post("/api/v1/products", h.createProduct)
	app.Get("/api/v1/products/count", h.countProducts)
	app.Get("/api/v1/variants", h.getVariants)
	app.Get("/api/v1/variants/count", h.countVariants)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Put("/api/v1/product/:id", h.updateProduct)
	app.Delete("/api/v1/product/:id", h.deleteProduct)
	app.Post("/api/v1/product/:id/variants", h.addVariant)
	app.Delete("/api/v1/product/:id/variants", h.deleteVariantsByProperty)
	app.Get("/api/v1/product/:id/variant/:variantId", h.getVariant)
	app.Delete("/api/v1/product/:id/variant/:variantId", h.deleteVariant)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.QueryInt("page", 0), c.QueryInt("limit", 10), c.Query("query"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) countProducts(c *fiber.Ctx) error {
	count, err := h.service.CountProducts(c.Query("query"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"total": count})
}

func (h *Handler) getVariants(c *fiber.Ctx) error {
	variants, err := h.service.ListVariants(c.QueryInt("page", 0), c.QueryInt("limit", 10), c.Query("query"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(variants)
}

func (h *Handler) countVariants(c *fiber.Ctx) error {
	count, err := h.service.CountVariants(c.Query("query"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"total": count})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(p)
}

func (h *Handler) getVariant(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	variantID, err := strconv.Atoi(c.Params("variantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid variant id"})
	}

	v, err := h.service.GetVariant(productID, variantID)
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(v)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product name is required"})
	}
	if len(payload.Variants) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "at least one variant is required"})
	}

	created, err := h.service.Create(payload.toProduct(time.Now().UTC()))
	if err != nil {
		return productError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) addVariant(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(variantRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be non-negative"})
	}

	created, err := h.service.AddVariant(productID, payload.toVariant(time.Now().UTC()))
	if err != nil {
		return productError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Variants) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "at least one variant is required"})
	}

	updated, err := h.service.Update(id, payload.toProduct(time.Now().UTC()))
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		return productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "product deleted"})
}

func (h *Handler) deleteVariant(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	variantID, err := strconv.Atoi(c.Params("variantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid variant id"})
	}

	if err := h.service.DeleteVariant(productID, variantID); err != nil {
		return productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "variant deleted"})
}

func (h *Handler) deleteVariantsByProperty(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	property := c.Query("property")
	value := c.Query("value")
	if property == "" || value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "property and value are required"})
	}

	if err := h.service.DeleteVariantsByProperty(productID, property, value); err != nil {
		if err == ErrUnknownProperty {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "property must be size, color or material"})
		}
		return productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "variants deleted"})
}

func productError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrVariantNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "variant not found"})
	case ErrCategoryNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
	case ErrBrandNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "brand not found"})
	case ErrSKUExists:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "sku already exists"})
	case ErrReservedSKU:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "sku must not use the PVN prefix"})
	case ErrDuplicateVariant:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "duplicate variant properties"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (p productRequest) toProduct(now time.Time) Product {
	ts := now.Format(time.RFC3339)
	variants := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, v.toVariant(now))
	}
	return Product{
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		ImagePaths:  p.ImagePaths,
		Variants:    variants,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func (v variantRequest) toVariant(now time.Time) Variant {
	ts := now.Format(time.RFC3339)
	return Variant{
		ID:           v.ID,
		SKU:          v.SKU,
		Size:         v.Size,
		Color:        v.Color,
		Material:     v.Material,
		Quantity:     v.Quantity,
		InitialPrice: v.InitialPrice,
		RetailPrice:  v.RetailPrice,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}
