package order

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{
				"user_id":  v,
				"is_admin": c.Get("X-Admin") == "true",
			}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func authedJSON(method, target, body, userID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	return req
}

const createBody = `{"shippingAddress":"1 Main St","city":"Springfield","postalCode":"54000","country":"US","items":[{"productId":7,"quantity":2}]}`

func TestOrderRoutes_Create(t *testing.T) {
	svc, _, _ := newOrderHarness(5)
	app := makeAppWithOrderHandler(NewHandler(svc))

	// unauthorized access should be blocked
	res, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, ""))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated POST, got %d", res.StatusCode)
	}

	res2, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, "user-1"))
	if res2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for order creation, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	body := string(b2)
	if !strings.Contains(body, `"orderNumber":"ORD-`) {
		t.Fatalf("expected order number in response, got %s", body)
	}
	if !strings.Contains(body, `"status":"Pending"`) {
		t.Fatalf("expected Pending status, got %s", body)
	}
	if !strings.Contains(body, `"totalAmount":"32`) {
		t.Fatalf("expected total 32, got %s", body)
	}

	// listing own orders returns the new order
	res3, _ := app.Test(authedJSON("GET", "/api/v1/orders", "", "user-1"))
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for listing orders, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"orderNumber"`) {
		t.Fatalf("expected order in listing, got %s", string(b3))
	}
}

func TestOrderRoutes_CreateValidation(t *testing.T) {
	svc, _, _ := newOrderHarness(1)
	app := makeAppWithOrderHandler(NewHandler(svc))

	// empty item list
	res, _ := app.Test(authedJSON("POST", "/api/v1/orders",
		`{"shippingAddress":"1 Main St","items":[]}`, "user-1"))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty order, got %d", res.StatusCode)
	}

	// missing shipping address
	res2, _ := app.Test(authedJSON("POST", "/api/v1/orders",
		`{"items":[{"productId":7,"quantity":1}]}`, "user-1"))
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing address, got %d", res2.StatusCode)
	}

	// more units than in stock
	res3, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, "user-1"))
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient stock, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "Insufficient stock") {
		t.Fatalf("expected insufficient stock message, got %s", string(b3))
	}
}

func TestOrderRoutes_Cancel(t *testing.T) {
	svc, _, _ := newOrderHarness(5)
	app := makeAppWithOrderHandler(NewHandler(svc))

	res, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, "user-1"))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for order creation, got %d", res.StatusCode)
	}

	// someone else cannot cancel it
	res2, _ := app.Test(authedJSON("PUT", "/api/v1/orders/1/cancel", "", "user-2"))
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign cancel, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(authedJSON("PUT", "/api/v1/orders/1/cancel", "", "user-1"))
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for cancel, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"status":"Cancelled"`) {
		t.Fatalf("expected Cancelled status, got %s", string(b3))
	}

	// cancelling again is rejected by the state machine
	res4, _ := app.Test(authedJSON("PUT", "/api/v1/orders/1/cancel", "", "user-1"))
	if res4.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for double cancel, got %d", res4.StatusCode)
	}
}

func TestOrderRoutes_AdminOnly(t *testing.T) {
	svc, _, _ := newOrderHarness(5)
	app := makeAppWithOrderHandler(NewHandler(svc))

	res, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, "user-1"))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for order creation, got %d", res.StatusCode)
	}

	// non-admin callers are rejected from the admin surface
	res2, _ := app.Test(authedJSON("GET", "/api/v1/orders/all", "", "user-2"))
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin list, got %d", res2.StatusCode)
	}

	req3 := authedJSON("GET", "/api/v1/orders/all", "", "user-2")
	req3.Header.Set("X-Admin", "true")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin list, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"orderNumber"`) {
		t.Fatalf("expected orders in admin list, got %s", string(b3))
	}

	// status updates are admin only
	res4, _ := app.Test(authedJSON("PUT", "/api/v1/orders/1/status", `{"status":"Shipped"}`, "user-1"))
	if res4.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin status update, got %d", res4.StatusCode)
	}

	req5 := authedJSON("PUT", "/api/v1/orders/1/status", `{"status":"Shipped"}`, "user-2")
	req5.Header.Set("X-Admin", "true")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin status update, got %d", res5.StatusCode)
	}
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"status":"Shipped"`) {
		t.Fatalf("expected Shipped status, got %s", string(b5))
	}
	if !strings.Contains(string(b5), `"shippedDate"`) {
		t.Fatalf("expected shipped date stamped, got %s", string(b5))
	}

	req6 := authedJSON("PUT", "/api/v1/orders/1/status", `{"status":"Teleported"}`, "user-2")
	req6.Header.Set("X-Admin", "true")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", res6.StatusCode)
	}
}

func TestOrderRoutes_Sales(t *testing.T) {
	svc, _, _ := newOrderHarness(5)
	app := makeAppWithOrderHandler(NewHandler(svc))

	res, _ := app.Test(authedJSON("POST", "/api/v1/orders", createBody, "user-1"))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for order creation, got %d", res.StatusCode)
	}

	res2, _ := app.Test(authedJSON("GET", "/api/v1/orders/sales", "", "user-1"))
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin sales, got %d", res2.StatusCode)
	}

	req3 := authedJSON("GET", "/api/v1/orders/sales", "", "user-1")
	req3.Header.Set("X-Admin", "true")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin sales, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "32") {
		t.Fatalf("expected sales total 32, got %s", string(b3))
	}

	req4 := authedJSON("GET", "/api/v1/orders/sales?startDate=not-a-date", "", "user-1")
	req4.Header.Set("X-Admin", "true")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", res4.StatusCode)
	}
}
