package user

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// helper to build an app with a simple "bootstrap" middleware that injects a
// jwt.Token into locals when the X-User-ID header is provided. This avoids
// pulling in the full jwtware middleware and keeps tests lightweight.
func makeAppWithUserHandler(uHandler *Handler) *fiber.App {
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
	uHandler.RegisterPublicRoutes(app)
	uHandler.RegisterProtectedRoutes(app)
	return app
}

func TestProfileRoute_RegistrationAndAuth(t *testing.T) {
	seed := []User{{ID: 7, Name: "Jenny", Email: "j@example.com", Phone: "0901", Roles: []string{"ADMIN"}, Password: "hashed"}}
	repo := NewInMemoryRepository(seed)
	service := NewService(repo, nil)
	handler := NewHandler(service)
	app := makeAppWithUserHandler(handler)

	// route registration check
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/v1/profile"] {
		t.Fatalf("expected route '/api/v1/profile' to be registered")
	}

	// unauthorized request should yield 401
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected unauthorized status, got %d", res.StatusCode)
	}

	// authorized request using X-User-ID header
	req2 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("authorized profile request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 OK for authorized profile, got %d", res2.StatusCode)
	}

	// returned user matches and password is blanked
	b, _ := io.ReadAll(res2.Body)
	body := string(b)
	if !strings.Contains(body, "j@example.com") {
		t.Fatalf("response body does not contain expected email, got %s", body)
	}
	if strings.Contains(body, "hashed") {
		t.Fatalf("response body should not expose the password hash")
	}
}

func TestSignUpRoute(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	handler := NewHandler(NewService(repo, nil))
	app := makeAppWithUserHandler(handler)

	payload := `{"name":"Jane","email":"jane@example.com","password":"secret","phoneNumber":"0901"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("sign-up request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	// duplicate email conflicts
	req2 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(payload))
	req2.Header.Set("Content-Type", "application/json")
	res2, err := app.Test(req2, -1)
	if err != nil {
		t.Fatalf("second sign-up request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	// missing fields rejected
	req3 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"x@example.com"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, err := app.Test(req3, -1)
	if err != nil {
		t.Fatalf("incomplete sign-up request failed: %v", err)
	}
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", res3.StatusCode)
	}
}

func TestSignInRoute(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo, nil)
	handler := NewHandler(service)
	app := makeAppWithUserHandler(handler)

	if _, err := service.Register(User{Name: "Jane", Email: "jane@example.com", Password: "secret"}); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"jane@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("sign-in request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "token") {
		t.Fatalf("response should carry a token, got %s", string(b))
	}

	req2 := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, err := app.Test(req2, -1)
	if err != nil {
		t.Fatalf("wrong password sign-in failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", res2.StatusCode)
	}
}

func TestCheckRoutes(t *testing.T) {
	seed := []User{{ID: 3, Name: "Jenny", Email: "known@example.com", Phone: "0909"}}
	handler := NewHandler(NewService(NewInMemoryRepository(seed), nil))
	app := makeAppWithUserHandler(handler)

	req := httptest.NewRequest("GET", "/api/v1/user/check-email/known@example.com", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("check-email failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for known email, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/user/check-phoneNumber/0000", nil)
	res2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("check-phoneNumber failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown phone, got %d", res2.StatusCode)
	}
}

func TestChangePasswordRoute(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo, nil)
	handler := NewHandler(service)
	app := makeAppWithUserHandler(handler)

	created, err := service.Register(User{Name: "Jane", Email: "jane@example.com", Password: "old"})
	if err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	req := httptest.NewRequest("PUT", "/api/v1/profile/password", strings.NewReader(`{"oldPassword":"old","newPassword":"new"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", strconv.Itoa(created.ID))
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("PUT", "/api/v1/profile/password", strings.NewReader(`{"oldPassword":"old","newPassword":"again"}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", strconv.Itoa(created.ID))
	res2, err := app.Test(req2, -1)
	if err != nil {
		t.Fatalf("second change failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 when old password is stale, got %d", res2.StatusCode)
	}
}
