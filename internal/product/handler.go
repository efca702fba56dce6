package product

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/response"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/stock"
)

type Handler struct {
	service ServiceInterface
	db      *sql.DB // availability reads go through the stock ledger
}

func NewHandler(service ServiceInterface, db *sql.DB) *Handler {
	return &Handler{service: service, db: db}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getByID)
	app.Get("/api/v1/products/:id<[0-9]+>/availability", h.availability)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.create)
	app.Put("/api/v1/products/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/products/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(response.Fail("invalid categoryId"))
		}
		products, err := h.service.ListByCategory(categoryID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
		}
		return c.JSON(response.OK(products, ""))
	}

	products, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(products, ""))
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(p, ""))
}

func (h *Handler) availability(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	avail, err := stock.Availability(h.db, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	if !avail.Exists {
		return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
	}
	return c.JSON(response.OK(avail, ""))
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	CategoryID    *int            `json:"categoryId"`
	SKU           string          `json:"sku"`
	IsActive      *bool           `json:"isActive"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	if payload.Name == "" || payload.Price.IsNegative() || payload.StockQuantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("name, non-negative price and stock are required"))
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	created, err := h.service.Create(Product{
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         payload.Price,
		StockQuantity: payload.StockQuantity,
		ImageURL:      payload.ImageURL,
		CategoryID:    payload.CategoryID,
		SKU:           payload.SKU,
		IsActive:      active,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(response.OK(created, "Product created"))
}

func (h *Handler) update(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	id, _ := strconv.Atoi(c.Params("id"))

	existing, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Price = payload.Price
	existing.StockQuantity = payload.StockQuantity
	existing.ImageURL = payload.ImageURL
	existing.CategoryID = payload.CategoryID
	existing.SKU = payload.SKU
	if payload.IsActive != nil {
		existing.IsActive = *payload.IsActive
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(updated, "Product updated"))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Product not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(true, "Product deleted"))
}
