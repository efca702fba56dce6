package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/response"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/stock"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/items/:id<[0-9]+>", h.updateItem)
	app.Delete("/api/v1/cart/items/:id<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	view, err := h.service.Get(userID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(response.OK(view, ""))
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	if payload.ProductID <= 0 || payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("productId and positive quantity are required"))
	}
	view, err := h.service.Add(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(response.OK(view, "Item added to cart"))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	cartItemID, _ := strconv.Atoi(c.Params("id"))
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	view, err := h.service.UpdateItem(userID, cartItemID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(response.OK(view, "Cart updated"))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	cartItemID, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Remove(userID, cartItemID); err != nil {
		return cartError(c, err)
	}
	return c.JSON(response.OK(true, "Item removed from cart"))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := customer.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}
	if err := h.service.Clear(userID); err != nil {
		return cartError(c, err)
	}
	return c.JSON(response.OK(true, "Cart cleared"))
}

func cartError(c *fiber.Ctx, err error) error {
	switch err {
	case customer.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Customer not found"))
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
	case ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Cart item not found"))
	case stock.ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("Insufficient stock"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
}
