package order

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	// fixed paths before the :id parameter
	app.Get("/api/v1/orders/all", h.getAllOrders)
	app.Get("/api/v1/orders/sales", h.getSales)
	app.Get("/api/v1/orders", h.getMyOrders)
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Put("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	app.Put("/api/v1/orders/:id<[0-9]+>/status", h.updateStatus)
}

type createOrderRequest struct {
	ShippingAddress string            `json:"shippingAddress"`
	City            string            `json:"city"`
	PostalCode      string            `json:"postalCode"`
	Country         string            `json:"country"`
	Notes           *string           `json:"notes,omitempty"`
	Items           []createOrderLine `json:"items"`
}

type createOrderLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("order must contain at least one item"))
	}
	if payload.ShippingAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("shippingAddress is required"))
	}

	lines := make([]Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	created, err := h.service.Create(userID, ShippingInfo{
		Address:    payload.ShippingAddress,
		City:       payload.City,
		PostalCode: payload.PostalCode,
		Country:    payload.Country,
		Notes:      payload.Notes,
	}, lines)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(response.OK(created, "Order created successfully"))
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(orders, ""))
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	orders, err := h.service.ListAll()
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(orders, ""))
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	orderID, _ := strconv.Atoi(c.Params("id"))
	ord, err := h.service.GetByID(orderID, userID, customer.IsAdminFromCtx(c))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(ord, ""))
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	orderID, _ := strconv.Atoi(c.Params("id"))
	cancelled, err := h.service.Cancel(orderID, userID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(cancelled, "Order cancelled successfully"))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	orderID, _ := strconv.Atoi(c.Params("id"))
	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	updated, err := h.service.UpdateStatus(orderID, Status(payload.Status))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(updated, "Order status updated successfully"))
}

func (h *Handler) getSales(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	start, err := parseDateQuery(c.Query("startDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("invalid startDate"))
	}
	end, err := parseDateQuery(c.Query("endDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("invalid endDate"))
	}
	sum, err := h.service.TotalSales(start, end)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(response.OK(sum, ""))
}

// parseDateQuery accepts RFC 3339 or a bare yyyy-mm-dd date.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func orderError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Order not found"))
	case ErrCustomerNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Customer not found"))
	case ErrProductNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
	case ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("Insufficient stock"))
	case ErrUnauthorized:
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("Unauthorized access to order"))
	case ErrInvalidTransition:
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("Order cannot be cancelled at this stage"))
	case ErrInvalidStatus, ErrEmptyOrder, ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
}
