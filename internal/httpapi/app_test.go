package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sirawit-s/shop-backend/internal/cart"
	"github.com/sirawit-s/shop-backend/internal/order"
	"github.com/sirawit-s/shop-backend/internal/product"
	"github.com/sirawit-s/shop-backend/internal/session"
	"github.com/sirawit-s/shop-backend/internal/user"
)

func makeApp() (*fiber.App, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10, Category: "Electronics"},
		{ID: 2, Name: "T-Shirt", Price: decimal.RequireFromString("29.99"), Stock: 50, Category: "Clothing"},
	})

	app := New(Deps{
		Products: products,
		Users:    user.NewInMemoryRepository(nil),
		Orders:   order.NewInMemoryRepository(products),
		Carts:    cart.NewMemoryStore(),
		Sessions: session.NewStore(),
	})
	return app, products
}

// client carries cookies between requests, standing in for a browser session.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
}

func (c *client) do(method, target string, body any) (*http.Response, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	res, err := c.app.Test(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, target, err)
	}
	if got := res.Cookies(); len(got) > 0 {
		c.cookies = got
	}

	decoded := make(map[string]any)
	_ = json.NewDecoder(res.Body).Decode(&decoded)
	return res, decoded
}

func (c *client) register(username, email string) {
	c.t.Helper()
	res, body := c.do(fiber.MethodPost, "/register", fiber.Map{
		"username": username, "email": email, "password": "secret123",
	})
	if res.StatusCode != fiber.StatusCreated {
		c.t.Fatalf("register failed: %d %v", res.StatusCode, body)
	}
}

func (c *client) login(username string) {
	c.t.Helper()
	res, body := c.do(fiber.MethodPost, "/login", fiber.Map{
		"username": username, "password": "secret123",
	})
	if res.StatusCode != fiber.StatusOK {
		c.t.Fatalf("login failed: %d %v", res.StatusCode, body)
	}
}

func TestIndex(t *testing.T) {
	app, _ := makeApp()
	c := &client{t: t, app: app}

	res, body := c.do(fiber.MethodGet, "/", nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if body["message"] != "Welcome to the Shop API" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := makeApp()
	c := &client{t: t, app: app}

	res, body := c.do(fiber.MethodGet, "/no/such/route", nil)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if body["error"] != "Resource not found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	app, _ := makeApp()
	c := &client{t: t, app: app}

	for _, target := range []struct{ method, path string }{
		{fiber.MethodPost, "/api/checkout"},
		{fiber.MethodGet, "/api/orders"},
		{fiber.MethodGet, "/api/orders/1"},
	} {
		res, body := c.do(target.method, target.path, nil)
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", target.method, target.path, res.StatusCode)
		}
		if body["error"] != "Authentication required" {
			t.Fatalf("%s %s: unexpected body: %v", target.method, target.path, body)
		}
	}
}

func TestShoppingFlow(t *testing.T) {
	app, products := makeApp()
	c := &client{t: t, app: app}

	c.register("alice", "alice@example.com")
	c.login("alice")

	// an empty cart cannot check out
	res, body := c.do(fiber.MethodPost, "/api/checkout", fiber.Map{"shipping_address": "123 Main St"})
	if res.StatusCode != fiber.StatusBadRequest || body["error"] != "Cart is empty" {
		t.Fatalf("expected empty-cart rejection, got %d %v", res.StatusCode, body)
	}

	res, body = c.do(fiber.MethodPost, "/api/cart", fiber.Map{"product_id": 1, "quantity": 2})
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("add to cart failed: %d %v", res.StatusCode, body)
	}

	// a missing address blocks the order
	res, body = c.do(fiber.MethodPost, "/api/checkout", nil)
	if res.StatusCode != fiber.StatusBadRequest || body["error"] != "Shipping address is required" {
		t.Fatalf("expected missing-address rejection, got %d %v", res.StatusCode, body)
	}

	res, body = c.do(fiber.MethodPost, "/api/checkout", fiber.Map{"shipping_address": "123 Main St"})
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("checkout failed: %d %v", res.StatusCode, body)
	}
	if body["message"] != "Order placed successfully" {
		t.Fatalf("unexpected body: %v", body)
	}
	ord, ok := body["order"].(map[string]any)
	if !ok {
		t.Fatalf("missing order in response: %v", body)
	}
	if ord["total_amount"] != 1999.98 || ord["status"] != "completed" {
		t.Fatalf("unexpected order: %v", ord)
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items: %v", body["items"])
	}
	orderID := int(ord["id"].(float64))

	p, _ := products.GetByID(1)
	if p.Stock != 8 {
		t.Fatalf("expected stock 8 after checkout, got %d", p.Stock)
	}

	// checkout empties the cart
	res, body = c.do(fiber.MethodGet, "/api/cart", nil)
	if res.StatusCode != fiber.StatusOK || body["item_count"] != float64(0) {
		t.Fatalf("expected an empty cart, got %d %v", res.StatusCode, body)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/orders", nil)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	listRes, err := app.Test(req)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	var orders []map[string]any
	if err := json.NewDecoder(listRes.Body).Decode(&orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 || int(orders[0]["id"].(float64)) != orderID {
		t.Fatalf("unexpected orders: %v", orders)
	}

	res, body = c.do(fiber.MethodGet, "/api/orders/"+strconv.Itoa(orderID), nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("order detail failed: %d %v", res.StatusCode, body)
	}
	if body["shipping_address"] != "123 Main St" {
		t.Fatalf("unexpected detail: %v", body)
	}

	res, body = c.do(fiber.MethodGet, "/api/orders/999", nil)
	if res.StatusCode != fiber.StatusNotFound || body["error"] != "Order not found" {
		t.Fatalf("expected 404, got %d %v", res.StatusCode, body)
	}

	// a second account cannot read alice's order
	other := &client{t: t, app: app}
	other.register("bob", "bob@example.com")
	other.login("bob")
	res, body = other.do(fiber.MethodGet, "/api/orders/"+strconv.Itoa(orderID), nil)
	if res.StatusCode != fiber.StatusForbidden || body["error"] != "Unauthorized" {
		t.Fatalf("expected 403, got %d %v", res.StatusCode, body)
	}
}
