package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type memRepo struct {
	storage []Product
	nextID  int
}

func (m *memRepo) List(ctx context.Context) ([]Product, error) {
	return m.storage, nil
}

func (m *memRepo) GetByID(ctx context.Context, id int) (Product, error) {
	for _, p := range m.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (m *memRepo) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	out := make([]Product, 0)
	for _, id := range ids {
		if p, err := m.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) Create(ctx context.Context, p Product) (Product, error) {
	m.nextID++
	p.ID = m.nextID
	m.storage = append(m.storage, p)
	return p, nil
}

func (m *memRepo) Update(ctx context.Context, id int, p Product) (Product, error) {
	for i := range m.storage {
		if m.storage[i].ID == id {
			p.ID = id
			m.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (m *memRepo) Delete(ctx context.Context, id int) error {
	for i := range m.storage {
		if m.storage[i].ID == id {
			m.storage = append(m.storage[:i], m.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repository = (*memRepo)(nil)

func setupApp(repo Repository) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetProducts(t *testing.T) {
	repo := &memRepo{storage: []Product{
		{ID: 1, Name: "T-Shirt", Price: 19.99, Stock: 25, Status: StatusPublished},
		{ID: 2, Name: "Jeans", Price: 49.99, Stock: 15, Status: StatusPublished},
	}}
	app := setupApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/api/products", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 || products[0].Name != "T-Shirt" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app := setupApp(&memRepo{})

	res, err := app.Test(httptest.NewRequest("GET", "/api/products/42", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateProduct(t *testing.T) {
	repo := &memRepo{}
	app := setupApp(repo)

	body, _ := json.Marshal(Product{Name: "Abrigo Invierno", Description: "Abrigo de lana", Price: 120.00, Stock: 5})
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.Status != StatusPublished {
		t.Fatalf("expected default status Publicado, got %q", created.Status)
	}
}

func TestCreateProduct_MissingName(t *testing.T) {
	app := setupApp(&memRepo{})

	body, _ := json.Marshal(Product{Price: 10})
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := &memRepo{storage: []Product{{ID: 1, Name: "T-Shirt", Price: 19.99}}, nextID: 1}
	app := setupApp(repo)

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/products/1", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if len(repo.storage) != 0 {
		t.Fatal("product was not removed")
	}
}
