package customer

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service ServiceInterface
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phoneNumber"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/customers", h.getCustomers)
	app.Post("/api/v1/customers", h.createCustomer)
	app.Get("/api/v1/customer/check-phoneNumber/:phoneNumber", h.checkPhoneNumber)
	app.Get("/api/v1/customer/:id", h.getCustomer)
	app.Put("/api/v1/customer/:id", h.updateCustomer)
	app.Delete("/api/v1/customer/:id", h.deleteCustomer)
}

func (h *Handler) getCustomers(c *fiber.Ctx) error {
	params := ListParams{
		Page:   c.QueryInt("page", 0),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}

	customers, err := h.service.List(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	total, err := h.service.Count(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"total":     total,
	})
}

func (h *Handler) getCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	customer, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(customer)
}

func (h *Handler) checkPhoneNumber(c *fiber.Ctx) error {
	customer, err := h.service.GetByPhoneNumber(c.Params("phoneNumber"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(customer)
}

func (h *Handler) createCustomer(c *fiber.Ctx) error {
	payload := new(customerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and phone number are required"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Customer{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Address:   payload.Address,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if err == ErrPhoneExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "phone number already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(customerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Customer{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Address:   payload.Address,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(updated)
}

func (h *Handler) deleteCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "customer deleted"})
}
