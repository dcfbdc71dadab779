package category

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakeRepo struct {
	byID map[int]Category
}

func (f *fakeRepo) List(page, limit int, search string) ([]Category, error) {
	result := make([]Category, 0, len(f.byID))
	for _, cat := range f.byID {
		result = append(result, cat)
	}
	return result, nil
}

func (f *fakeRepo) Count(search string) (int, error) { return len(f.byID), nil }

func (f *fakeRepo) GetByID(id int) (Category, error) {
	cat, ok := f.byID[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return cat, nil
}

func (f *fakeRepo) Create(cat Category) (Category, error) {
	cat.ID = len(f.byID) + 1
	f.byID[cat.ID] = cat
	return cat, nil
}

func (f *fakeRepo) Update(id int, cat Category) (Category, error) {
	if _, ok := f.byID[id]; !ok {
		return Category{}, ErrNotFound
	}
	cat.ID = id
	f.byID[id] = cat
	return cat, nil
}

func (f *fakeRepo) Delete(id int) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

var _ Repository = (*fakeRepo)(nil)

func setupApp(repo *fakeRepo) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterProtectedRoutes(app)
	return app
}

func TestCategoryRoutes(t *testing.T) {
	repo := &fakeRepo{byID: map[int]Category{1: {ID: 1, Name: "Shirts"}}}
	app := setupApp(repo)

	req := httptest.NewRequest("GET", "/api/v1/category/1", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Shirts") {
		t.Fatalf("response missing category name: %s", string(b))
	}

	req2 := httptest.NewRequest("GET", "/api/v1/category/99", nil)
	res2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("get unknown category failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader(`{"name":"Trousers","code":"TR"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, err := app.Test(req3, -1)
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if res3.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res3.StatusCode)
	}

	// name is mandatory
	req4 := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader(`{"code":"XX"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, err := app.Test(req4, -1)
	if err != nil {
		t.Fatalf("create without name failed: %v", err)
	}
	if res4.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res4.StatusCode)
	}
}
