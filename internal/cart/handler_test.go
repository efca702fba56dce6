package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	svc, _ := newCartHarness()
	app := makeAppWithCartHandler(NewHandler(svc))

	// ensure routes registered
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/v1/cart"] {
		t.Fatalf("expected route '/api/v1/cart' to be registered")
	}

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET creates an empty cart
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "user-1")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}

	// add a product
	req3 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "user-1")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for adding to cart, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":2`) {
		t.Fatalf("expected quantity 2 in response, got %s", string(b3))
	}

	// add same product again, should merge into one line
	req4 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":1}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "user-1")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for second add, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b4))
	}
	if !strings.Contains(string(b4), `"totalItems":3`) {
		t.Fatalf("expected totalItems 3, got %s", string(b4))
	}

	// clear the cart
	req5 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req5.Header.Set("X-User-ID", "user-1")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clear cart, got %d", res5.StatusCode)
	}

	// after clearing, GET should return an empty cart
	req6 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req6.Header.Set("X-User-ID", "user-1")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 after clearing, got %d", res6.StatusCode)
	}
	b6, _ := io.ReadAll(res6.Body)
	if !strings.Contains(string(b6), `"totalItems":0`) {
		t.Fatalf("expected empty cart after clear, got %s", string(b6))
	}
}

func TestCartRoutes_InsufficientStock(t *testing.T) {
	svc, _ := newCartHarness()
	app := makeAppWithCartHandler(NewHandler(svc))

	// product 2 only has 2 units in stock
	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":2,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for oversized add, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Insufficient stock") {
		t.Fatalf("expected insufficient stock message, got %s", string(b))
	}
}

func TestCartRoutes_UnknownProduct(t *testing.T) {
	svc, _ := newCartHarness()
	app := makeAppWithCartHandler(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":999,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}

func TestCartRoutes_RemoveItem(t *testing.T) {
	svc, _ := newCartHarness()
	app := makeAppWithCartHandler(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}

	// the first line in a fresh harness gets id 1
	req2 := httptest.NewRequest("DELETE", "/api/v1/cart/items/1", nil)
	req2.Header.Set("X-User-ID", "user-1")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res2.StatusCode)
	}

	// removing someone else's item reads as missing
	req3 := httptest.NewRequest("DELETE", "/api/v1/cart/items/1", nil)
	req3.Header.Set("X-User-ID", "user-2")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign item, got %d", res3.StatusCode)
	}
}
