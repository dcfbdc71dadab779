package order

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/minhquangvu/store-backoffice/internal/user"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/count", h.countOrders)
	app.Get("/api/v1/orders/today-revenue", h.todayRevenue)
	app.Get("/api/v1/orders/:id", h.getOrderDetail)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(CreateOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// default the creator to the authenticated staff member
	if payload.CreatorID == 0 {
		userID, err := user.GetUserIDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		payload.CreatorID = userID
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		return orderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	orders, err := h.service.List(
		c.QueryInt("page", 0),
		c.QueryInt("limit", 10),
		c.Query("query"),
		start, end,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}

func (h *Handler) countOrders(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	count, err := h.service.Count(c.Query("query"), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"total": count})
}

func (h *Handler) getOrderDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	detail, err := h.service.GetDetail(id)
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(detail)
}

func (h *Handler) todayRevenue(c *fiber.Ctx) error {
	revenue, err := h.service.TodayRevenue(time.Now(), c.QueryInt("page", 0), c.QueryInt("limit", 10))
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(revenue)
}

// dateRange parses optional startDate/endDate query params. Missing bounds
// widen to cover everything; endDate is inclusive of the whole day.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Now().AddDate(0, 0, 1)

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed.AddDate(0, 0, 1)
	}

	return start, end, nil
}

func orderError(c *fiber.Ctx, err error) error {
	switch {
	case IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case IsInvalidOrder(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
