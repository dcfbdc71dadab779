package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// builds an app with a bootstrap middleware that injects a jwt.Token into
// locals when the X-User-ID header is provided, instead of the full jwtware
// middleware.
func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCreateOrderRoute_Success(t *testing.T) {
	repo := &fakeRepo{createResp: OrderDetailResponse{
		Order:   Order{ID: 42, Code: "SON00042", CustomerID: 2, CreatorID: 1},
		Details: []OrderDetail{{ID: 1, OrderID: 42, VariantID: 7, Quantity: 3, SubTotal: 150}},
	}}
	h := NewHandler(newTestService(repo))
	app := makeAppWithOrderHandler(h)

	body, _ := json.Marshal(CreateOrderRequest{
		CustomerID:   2,
		TotalPayment: 150,
		CashReceive:  200,
		LineItems:    []LineItemRequest{{VariantID: 7, Quantity: 3, SubTotal: 150}},
	})

	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var resp OrderDetailResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "SON00042" {
		t.Errorf("expected code SON00042, got %q", resp.Code)
	}
	if len(repo.created) != 1 || repo.created[0].CreatorID != 1 {
		t.Errorf("expected creator to default from auth context, got %+v", repo.created)
	}
}

func TestCreateOrderRoute_NoAuthNoCreator(t *testing.T) {
	h := NewHandler(newTestService(&fakeRepo{}))
	app := makeAppWithOrderHandler(h)

	body, _ := json.Marshal(CreateOrderRequest{
		CustomerID:   2,
		TotalPayment: 150,
		CashReceive:  200,
		LineItems:    []LineItemRequest{{VariantID: 7, Quantity: 3}},
	})

	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestCreateOrderRoute_InvalidRequestMapsTo422(t *testing.T) {
	h := NewHandler(newTestService(&fakeRepo{}))
	app := makeAppWithOrderHandler(h)

	// cash received below the total payment
	body, _ := json.Marshal(CreateOrderRequest{
		CustomerID:   2,
		CreatorID:    1,
		TotalPayment: 150,
		CashReceive:  100,
		LineItems:    []LineItemRequest{{VariantID: 7, Quantity: 3}},
	})

	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
}

func TestCreateOrderRoute_UnknownCustomerMapsTo404(t *testing.T) {
	h := NewHandler(newTestService(&fakeRepo{}))
	app := makeAppWithOrderHandler(h)

	body, _ := json.Marshal(CreateOrderRequest{
		CustomerID:   999,
		CreatorID:    1,
		TotalPayment: 10,
		CashReceive:  10,
		LineItems:    []LineItemRequest{{VariantID: 7, Quantity: 1}},
	})

	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestTodayRevenueRoute_EmptyDayMapsTo404(t *testing.T) {
	h := NewHandler(newTestService(&fakeRepo{}))
	app := makeAppWithOrderHandler(h)

	req := httptest.NewRequest("GET", "/api/v1/orders/today-revenue", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for a day without orders, got %d", res.StatusCode)
	}
}

func TestGetOrdersRoute_BadDateRejected(t *testing.T) {
	h := NewHandler(newTestService(&fakeRepo{}))
	app := makeAppWithOrderHandler(h)

	req := httptest.NewRequest("GET", "/api/v1/orders?startDate=yesterday", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}
