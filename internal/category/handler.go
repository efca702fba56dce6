package category

import (
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.list)
	app.Get("/api/v1/categories/:id<[0-9]+>", h.getByID)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/categories", h.create)
	app.Put("/api/v1/categories/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/categories/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(categories, ""))
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	cat, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Category not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(cat, ""))
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("name is required"))
	}
	created, err := h.service.Create(Category{Name: payload.Name, Description: payload.Description})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(response.OK(created, "Category created"))
}

func (h *Handler) update(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	id, _ := strconv.Atoi(c.Params("id"))
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	updated, err := h.service.Update(id, Category{Name: payload.Name, Description: payload.Description})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Category not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(updated, "Category updated"))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if !customer.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(response.Fail("admin only"))
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Category not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(true, "Category deleted"))
}
